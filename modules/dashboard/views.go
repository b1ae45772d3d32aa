package dashboard

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailtrack/handler"
	"github.com/dmitrymomot/mailtrack/modules/ui"
)

// Element ids patched by the handlers.
const (
	SMTPFormID     = "smtp-form"
	SMTPStatusID   = "smtp-status"
	TestModalID    = "smtp-test"
	SendFormID     = "send-form"
	UploadFormID   = "upload-form"
	ImagePreviewID = "image-preview"
	ResultsModalID = "send-results"
)

// ClearSMTPPrompt is the browser confirmation shown before clearing settings.
const ClearSMTPPrompt = "Are you sure you want to clear the SMTP configuration?"

func checked(b bool) ui.Markup {
	if b {
		return " checked"
	}
	return ""
}

// SMTPStatus is the badge telling whether sending is possible.
func SMTPStatus(configured bool) templ.Component {
	return ui.Component(func(w *ui.Writer) {
		if configured {
			w.Printf(`<span id="%s" class="badge bg-success">Configured</span>`, SMTPStatusID)
			return
		}
		w.Printf(`<span id="%s" class="badge bg-secondary">Not configured</span>`, SMTPStatusID)
	})
}

// SMTPFormView renders the settings form. The password field is always empty.
func SMTPFormView(f SMTPForm) templ.Component {
	return ui.Component(func(w *ui.Writer) {
		w.Printf(`<form id="%s" data-on:submit__prevent="@post('/smtp/config', {contentType: 'form'})">`, SMTPFormID)
		w.Raw(`<div class="row g-3">`)
		w.Printf(`<div class="col-md-8"><label class="form-label" for="smtp-host">Host</label><input id="smtp-host" name="host" class="form-control" placeholder="smtp.example.com" value="%s"></div>`, f.Host)
		w.Printf(`<div class="col-md-4"><label class="form-label" for="smtp-port">Port</label><input id="smtp-port" name="port" type="number" min="1" max="65535" class="form-control" value="%s"></div>`, f.Port)
		w.Printf(`<div class="col-md-6"><label class="form-label" for="smtp-username">Username</label><input id="smtp-username" name="username" class="form-control" autocomplete="username" value="%s"></div>`, f.Username)
		w.Raw(`<div class="col-md-6"><label class="form-label" for="smtp-password">Password</label><input id="smtp-password" name="password" type="password" class="form-control" autocomplete="current-password" value=""></div>`)
		w.Printf(`<div class="col-12"><div class="form-check"><input id="smtp-tls" name="use_tls" type="checkbox" class="form-check-input" value="true"%s><label class="form-check-label" for="smtp-tls">Use TLS</label></div></div>`, checked(f.UseTLS))
		w.Raw(`</div><div class="d-flex gap-2 mt-3">`)
		w.Raw(`<button type="submit" class="btn btn-primary">Save</button>`)
		w.Raw(`<button type="button" class="btn btn-outline-secondary" data-on:click="@get('/smtp/test')">Send Test</button>`)
		w.Printf(`<button type="button" class="btn btn-outline-danger" data-prompt="%s" data-on:click="confirm(el.dataset.prompt) && @post('/smtp/clear?confirmed=true')">Clear</button>`, ClearSMTPPrompt)
		w.Raw(`</div></form>`)
	})
}

// TestDialog asks for the address the test message goes to.
func TestDialog() handler.TemplPatch {
	return ui.OpenModal(ui.ModalProps{
		ID:    TestModalID,
		Title: "Send Test Email",
		Body: ui.Component(func(w *ui.Writer) {
			w.Raw(`<form data-on:submit__prevent="@post('/smtp/test', {contentType: 'form'})" data-indicator:testing>`)
			w.Raw(`<label class="form-label" for="test-email">Test email address</label>`)
			w.Raw(`<input id="test-email" name="test_email" type="email" class="form-control mb-3" placeholder="you@example.com">`)
			w.Raw(`<button type="submit" class="btn btn-primary" data-attr:disabled="$testing">Send</button>`)
			w.Raw(`</form>`)
		}),
	})
}

// SendFormView renders an empty bulk send form.
func SendFormView() templ.Component {
	return ui.Component(func(w *ui.Writer) {
		w.Printf(`<form id="%s" data-on:submit__prevent="@post('/send', {contentType: 'form'})" data-indicator:sending>`, SendFormID)
		w.Raw(`<div class="mb-3"><label class="form-label" for="send-subject">Subject</label><input id="send-subject" name="subject" class="form-control"></div>`)
		w.Raw(`<div class="mb-3"><label class="form-label" for="send-body">Body</label><textarea id="send-body" name="body" rows="6" class="form-control"></textarea></div>`)
		w.Raw(`<div class="mb-3"><label class="form-label" for="send-recipients">Recipients</label><textarea id="send-recipients" name="recipients" rows="4" class="form-control" placeholder="One email address per line"></textarea></div>`)
		w.Printf(`<div class="mb-3"><label class="form-label" for="send-redirect">Click redirect URL</label><input id="send-redirect" name="redirect_url" type="url" class="form-control" placeholder="%s"></div>`, DefaultRedirectURL)
		w.Raw(`<button type="submit" class="btn btn-success" data-attr:disabled="$sending">`)
		w.Raw(`<span data-show="!$sending">Send Emails</span><span data-show="$sending"><span class="spinner-border spinner-border-sm me-1"></span>Sending...</span>`)
		w.Raw(`</button></form>`)
	})
}

// UploadFormView renders the image picker. Re-rendering it clears the selection.
func UploadFormView() templ.Component {
	return ui.Component(func(w *ui.Writer) {
		w.Printf(`<form id="%s" enctype="multipart/form-data" data-indicator:uploading>`, UploadFormID)
		w.Raw(`<label class="form-label" for="upload-image">Image (optional)</label>`)
		w.Raw(`<input id="upload-image" name="image" type="file" accept="image/*" class="form-control" data-attr:disabled="$uploading" data-on:change="@post('/upload', {contentType: 'form'})">`)
		w.Raw(`</form>`)
	})
}

// ImagePreview shows the selected image. An empty src renders the empty slot.
func ImagePreview(src, url string) templ.Component {
	return ui.Component(func(w *ui.Writer) {
		w.Printf(`<div id="%s" class="mt-3">`, ImagePreviewID)
		if src != "" {
			w.Printf(`<img src="%s" alt="Selected image" class="img-thumbnail" style="max-width: 320px">`, src)
			if url == "" {
				w.Raw(`<div class="small text-muted mt-1">Uploading...</div>`)
			} else {
				w.Printf(`<div class="small text-muted mt-1 text-break">%s</div>`, url)
			}
		}
		w.Raw(`</div>`)
	})
}

// ResultsModal opens the send report.
func ResultsModal(report templ.Component) handler.TemplPatch {
	return ui.OpenModal(ui.ModalProps{
		ID:    ResultsModalID,
		Title: "Send Results",
		Size:  ui.ModalLarge,
		Body:  report,
	})
}

func patchOuter(c templ.Component, id string) handler.TemplPatch {
	return handler.Patch(c, handler.WithTarget("#"+id), handler.WithPatchMode(handler.PatchOuter))
}

func sizeLabel(n int64) string {
	if n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%dKB", n>>10)
}

// DashboardPage is the main document. SMTP settings load once the page is shown.
func DashboardPage(nav []ui.NavItem) templ.Component {
	return ui.Page("Email Tracker", nav, ui.Component(func(w *ui.Writer) {
		w.Raw(`<div class="row g-4" data-signals="{sending: false, uploading: false, testing: false}">`)

		w.Raw(`<div class="col-lg-5"><div class="card"><div class="card-header d-flex justify-content-between align-items-center"><span>SMTP Configuration</span>`)
		w.Render(SMTPStatus(false))
		w.Raw(`</div><div class="card-body" data-init="@get('/smtp/config')">`)
		w.Render(SMTPFormView(DefaultSMTPForm()))
		w.Raw(`</div></div></div>`)

		w.Raw(`<div class="col-lg-7"><div class="card"><div class="card-header">Send Tracked Emails</div><div class="card-body">`)
		w.Render(SendFormView())
		w.Raw(`<hr>`)
		w.Render(UploadFormView())
		w.Render(ImagePreview("", ""))
		w.Raw(`</div></div></div>`)

		w.Raw(`</div>`)
	}))
}
