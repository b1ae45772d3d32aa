package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailtrack/handler"
	"github.com/dmitrymomot/mailtrack/modules/ui"
	"github.com/dmitrymomot/mailtrack/pkg/binder"
	"github.com/dmitrymomot/mailtrack/pkg/cache"
	"github.com/dmitrymomot/mailtrack/pkg/file"
	"github.com/dmitrymomot/mailtrack/pkg/imaging"
	"github.com/dmitrymomot/mailtrack/pkg/logger"
	"github.com/dmitrymomot/mailtrack/pkg/session"
	"github.com/dmitrymomot/mailtrack/pkg/validator"
	"github.com/dmitrymomot/mailtrack/svc/tracker"
)

// Handlers serves the dashboard page and its actions.
type Handlers struct {
	api          Backend
	uploader     ImageUploader
	workspaces   *cache.Registry[*Workspace]
	log          *slog.Logger
	nav          []ui.NavItem
	maxUpload    int64
	redirectURL  string
	errorHandler handler.ErrorHandler[handler.Context]
}

type Option func(*Handlers)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handlers) {
		if l != nil {
			h.log = l
		}
	}
}

func WithNav(items ...ui.NavItem) Option {
	return func(h *Handlers) { h.nav = items }
}

// WithMaxUploadSize sets the image size limit in bytes. Non-positive values are ignored.
func WithMaxUploadSize(n int64) Option {
	return func(h *Handlers) {
		if n > 0 {
			h.maxUpload = n
		}
	}
}

// WithRedirectURL sets the default click redirect of new workspaces.
func WithRedirectURL(u string) Option {
	return func(h *Handlers) { h.redirectURL = u }
}

func WithErrorHandler(eh handler.ErrorHandler[handler.Context]) Option {
	return func(h *Handlers) {
		if eh != nil {
			h.errorHandler = eh
		}
	}
}

// NewHandlers keeps one Workspace per browser session in workspaces.
// Images go through uploader.
func NewHandlers(api Backend, uploader ImageUploader, workspaces *cache.Registry[*Workspace], opts ...Option) *Handlers {
	h := &Handlers{
		api:         api,
		uploader:    uploader,
		workspaces:  workspaces,
		log:         slog.Default(),
		maxUpload:   DefaultMaxUploadSize,
		redirectURL: DefaultRedirectURL,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.errorHandler == nil {
		h.errorHandler = handler.NewErrorHandler(h.log, ui.ErrorHandlerConfig())
	}
	return h
}

func (h *Handlers) newWorkspace() *Workspace {
	return NewWorkspace(h.api, WithWorkspaceLogger(h.log), WithDefaultRedirect(h.redirectURL))
}

// workspace returns the session's workspace. Requests without a session get
// a throwaway one, which never has SMTP settings.
func (h *Handlers) workspace(ctx context.Context) *Workspace {
	id := session.IDFromContext(ctx)
	if id == "" {
		return h.newWorkspace()
	}
	return h.workspaces.GetOrCreate(id, h.newWorkspace)
}

// Routes returns the dashboard router.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	binders := []handler.Bind{binder.Signals(), binder.Form(), binder.Query()}

	r.Get("/", wrap(h.page, h.errorHandler))
	r.Get("/smtp/config", wrap(h.loadSMTP, h.errorHandler))
	r.Post("/smtp/config", wrap(h.saveSMTP, h.errorHandler, binders...))
	r.Post("/smtp/clear", wrap(h.clearSMTP, h.errorHandler, binders...))
	r.Get("/smtp/test", wrap(h.testDialog, h.errorHandler))
	r.Post("/smtp/test", wrap(h.sendTest, h.errorHandler, binders...))
	r.Post("/send", wrap(h.send, h.errorHandler, binders...))
	r.Post("/upload", wrap(h.upload, h.errorHandler, binder.Form()))

	return r
}

func wrap[R any](fn handler.HandlerFunc[handler.Context, R], eh handler.ErrorHandler[handler.Context], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(fn,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](eh),
	)
}

type (
	noRequest    struct{}
	clearRequest struct {
		Confirmed bool `query:"confirmed" form:"confirmed"`
	}
	testRequest struct {
		Address string `json:"test_email" form:"test_email"`
	}
	uploadRequest struct {
		Image *multipart.FileHeader `file:"image"`
	}
)

// firstMessage returns the first validation message carried by err.
func firstMessage(err error) (string, bool) {
	verrs := validator.ExtractValidationErrors(err)
	if len(verrs) == 0 {
		return "", false
	}
	return verrs[0].Message, true
}

// page renders the dashboard and starts a fresh workspace for this page load.
func (h *Handlers) page(ctx handler.Context, _ noRequest) handler.Response {
	if id := session.IDFromContext(ctx); id != "" {
		h.workspaces.Put(id, h.newWorkspace())
	}
	return handler.Templ(DashboardPage(h.nav))
}

func (h *Handlers) loadSMTP(ctx handler.Context, _ noRequest) handler.Response {
	cfg := h.workspace(ctx).LoadSMTP(ctx)
	return handler.TemplMulti(
		patchOuter(SMTPFormView(FormFromConfig(cfg)), SMTPFormID),
		patchOuter(SMTPStatus(cfg != nil), SMTPStatusID),
	)
}

func (h *Handlers) saveSMTP(ctx handler.Context, form SMTPForm) handler.Response {
	_, err := h.workspace(ctx).SaveSMTP(ctx, form)
	if msg, ok := firstMessage(err); ok {
		return handler.TemplMulti(ui.Notify(ui.LevelError, msg))
	}
	if err != nil {
		h.log.WarnContext(ctx, "failed to save smtp config", logger.Error(err), logger.Component("dashboard"))
		return handler.TemplMulti(ui.Notify(ui.LevelError, "Failed to save SMTP config: "+tracker.Message(err)))
	}
	return handler.TemplMulti(
		patchOuter(SMTPStatus(true), SMTPStatusID),
		ui.Notify(ui.LevelSuccess, "SMTP configuration saved successfully!"),
	)
}

func (h *Handlers) clearSMTP(ctx handler.Context, req clearRequest) handler.Response {
	if err := h.workspace(ctx).ClearSMTP(req.Confirmed); err != nil {
		return handler.TemplMulti()
	}
	return handler.TemplMulti(
		patchOuter(SMTPFormView(DefaultSMTPForm()), SMTPFormID),
		patchOuter(SMTPStatus(false), SMTPStatusID),
		ui.Notify(ui.LevelInfo, "SMTP configuration cleared"),
	)
}

func (h *Handlers) testDialog(ctx handler.Context, _ noRequest) handler.Response {
	if h.workspace(ctx).SMTP() == nil {
		return handler.TemplMulti(ui.Notify(ui.LevelWarning, "Please save SMTP configuration first"))
	}
	return handler.TemplMulti(TestDialog())
}

func (h *Handlers) sendTest(ctx handler.Context, req testRequest) handler.Response {
	_, err := h.workspace(ctx).SendTest(ctx, req.Address)
	if msg, ok := firstMessage(err); ok {
		return handler.TemplMulti(ui.Notify(ui.LevelError, msg))
	}
	switch {
	case errors.Is(err, ErrSMTPNotConfigured):
		return handler.TemplMulti(ui.Notify(ui.LevelWarning, "Please save SMTP configuration first"))
	case err != nil:
		h.log.WarnContext(ctx, "smtp test failed", logger.Error(err), logger.Component("dashboard"))
		return handler.TemplMulti(ui.Notify(ui.LevelError, "Test failed: "+tracker.Message(err)))
	}
	return handler.TemplMulti(
		ui.CloseModal(TestModalID),
		ui.Notify(ui.LevelSuccess, "Test email sent successfully!"),
	)
}

func (h *Handlers) send(ctx handler.Context, form SendForm) handler.Response {
	results, err := h.workspace(ctx).Submit(ctx, form)
	if msg, ok := firstMessage(err); ok {
		return handler.TemplMulti(ui.Notify(ui.LevelError, msg))
	}
	switch {
	case errors.Is(err, ErrSMTPNotConfigured):
		return handler.TemplMulti(ui.Notify(ui.LevelWarning, "Please configure SMTP settings first"))
	case err != nil:
		h.log.WarnContext(ctx, "bulk send failed", logger.Error(err), logger.Component("dashboard"))
		return handler.TemplMulti(ui.Notify(ui.LevelError, "Failed to send emails: "+tracker.Message(err)))
	}
	return handler.TemplMulti(
		ResultsModal(ResultsReport(results)),
		patchOuter(SendFormView(), SendFormID),
		patchOuter(UploadFormView(), UploadFormID),
		patchOuter(ImagePreview("", ""), ImagePreviewID),
		ui.Notify(ui.LevelSuccess, fmt.Sprintf("Successfully processed %d emails!", len(results))),
	)
}

// upload checks the file, shows a local preview and stores the image.
// Rejected and failed uploads forget any earlier image and clear the picker
// and the preview.
func (h *Handlers) upload(ctx handler.Context, req uploadRequest) handler.Response {
	ws := h.workspace(ctx)

	reset := func(stream handler.StreamContext, msg string) error {
		ws.SetImageURL("")
		return stream.SendMultiple(
			patchOuter(UploadFormView(), UploadFormID),
			patchOuter(ImagePreview("", ""), ImagePreviewID),
			ui.Notify(ui.LevelError, msg),
		)
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		up, err := ReadUpload(req.Image, h.maxUpload)
		switch {
		case errors.Is(err, file.ErrFileTooLarge):
			return reset(stream, "File too large. Maximum size: "+sizeLabel(h.maxUpload))
		case errors.Is(err, ErrNoFile), errors.Is(err, file.ErrEmptyFile):
			return reset(stream, "No file selected")
		case errors.Is(err, ErrNotImage):
			return reset(stream, "Please select an image file")
		case err != nil:
			h.log.WarnContext(stream, "failed to read upload", logger.Error(err), logger.Component("dashboard"))
			return reset(stream, "Upload failed: "+err.Error())
		}

		preview := imaging.Preview(up.Data, up.ContentType)
		if err := stream.SendComponent(ImagePreview(preview, ""), handler.WithTarget("#"+ImagePreviewID), handler.WithPatchMode(handler.PatchOuter)); err != nil {
			return err
		}

		url, err := ws.UploadImage(stream, h.uploader, up)
		if err != nil {
			h.log.WarnContext(stream, "image upload failed", logger.Error(err), logger.Component("dashboard"))
			return reset(stream, "Upload failed: "+tracker.Message(err))
		}
		return stream.SendMultiple(
			patchOuter(ImagePreview(preview, url), ImagePreviewID),
			ui.Notify(ui.LevelSuccess, "Image uploaded successfully!"),
		)
	})
}
