package tracking

import (
	"fmt"
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailtrack/handler"
	"github.com/dmitrymomot/mailtrack/modules/ui"
	"github.com/dmitrymomot/mailtrack/pkg/timefmt"
	"github.com/dmitrymomot/mailtrack/svc/tracker"
)

// Element ids patched by the handlers.
const (
	TableBodyID    = "tracking-table-body"
	PaginationID   = "tracking-pagination"
	DetailsModalID = "tracking-details"
	ClearModalID   = "clear-database"
)

const tableColumns = 8

// shortIDLen is how much of a tracking id the table shows.
const shortIDLen = 8

// ShortID truncates id to its first eight characters followed by "...".
func ShortID(id string) string {
	r := []rune(id)
	if len(r) <= shortIDLen {
		return id
	}
	return string(r[:shortIDLen]) + "..."
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func badgeClass(n int, positive string) string {
	if n > 0 {
		return positive
	}
	return "bg-secondary"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func detailsURL(prefix, trackingID, email string) string {
	u := prefix + "/tracking/" + url.PathEscape(trackingID) + "/details"
	if email != "" {
		u += "?" + url.Values{"email": {email}}.Encode()
	}
	return u
}

func messageRow(class, message string) templ.Component {
	return ui.Component(func(w *ui.Writer) {
		w.Printf(`<tbody id="%s"><tr><td colspan="%d" class="text-center py-4 %s">%s</td></tr></tbody>`,
			TableBodyID, tableColumns, class, message)
	})
}

// LoadingBody is the table body shown while a page loads.
func LoadingBody() templ.Component {
	return ui.Component(func(w *ui.Writer) {
		w.Printf(`<tbody id="%s"><tr><td colspan="%d">%s</td></tr></tbody>`, TableBodyID, tableColumns, ui.Spinner(""))
	})
}

// ErrorBody replaces the rows with the reason the load failed.
func ErrorBody(message string) templ.Component {
	return messageRow("text-danger", "Failed to load data: "+message)
}

// TableBody renders one row per record, or the empty state.
func TableBody(prefix string, records []tracker.TrackingRecord) templ.Component {
	if len(records) == 0 {
		return messageRow("text-muted", "No tracking data found")
	}
	return ui.Component(func(w *ui.Writer) {
		w.Printf(`<tbody id="%s">`, TableBodyID)
		for _, rec := range records {
			w.Render(recordRow(prefix, rec))
		}
		w.Raw(`</tbody>`)
	})
}

func recordRow(prefix string, rec tracker.TrackingRecord) templ.Component {
	return ui.Component(func(w *ui.Writer) {
		w.Raw(`<tr class="fade-in"><td><div class="d-flex flex-column">`)
		w.Printf(`<span class="fw-medium text-primary" role="button" data-url="%s" data-on:click="@get(el.dataset.url)">%s</span>`,
			detailsURL(prefix, rec.TrackingID, rec.RecipientEmail), rec.RecipientEmail)
		if rec.Subject != "" {
			w.Printf(`<small class="text-muted">%s</small>`, rec.Subject)
		}
		w.Raw(`</div></td>`)

		w.Printf(`<td><span class="tracking-id" title="Click to copy" %s>%s</span></td>`,
			ui.CopyAttrs(rec.TrackingID, "Tracking ID copied to clipboard!"), ShortID(rec.TrackingID))
		w.Printf(`<td><span class="badge %s status-badge">%s</span></td>`,
			badgeClass(rec.OpenCount, "bg-success"), plural(rec.OpenCount, "open", "opens"))
		w.Printf(`<td><span class="badge %s status-badge">%s</span></td>`,
			badgeClass(rec.ClickCount, "bg-primary"), plural(rec.ClickCount, "click", "clicks"))

		openClass := "text-muted"
		if !rec.LastOpenTime.IsZero() {
			openClass = "text-success"
		}
		w.Printf(`<td><span class="%s">%s</span></td>`, openClass, timefmt.FormatDate(rec.LastOpenTime.Ptr()))
		w.Printf(`<td><span class="font-monospace text-primary">%s</span></td>`, orDash(rec.LastIP))
		w.Printf(`<td><span class="font-monospace text-info">%s</span></td>`, orDash(rec.LastPort.String()))
		w.Printf(`<td><small class="text-muted">%s</small></td></tr>`, timefmt.FormatDate(rec.CreatedAt.Ptr()))
	})
}

// Pagination renders the bar for links; an empty list renders an empty bar.
func Pagination(prefix string, links []PageLink) templ.Component {
	return ui.Component(func(w *ui.Writer) {
		w.Printf(`<ul id="%s" class="pagination justify-content-center">`, PaginationID)
		for _, link := range links {
			var label ui.Markup
			switch link.Kind {
			case LinkPrev:
				label = `<span aria-hidden="true">&laquo;</span>`
			case LinkNext:
				label = `<span aria-hidden="true">&raquo;</span>`
			case LinkEllipsis:
				w.Raw(`<li class="page-item disabled"><span class="page-link">...</span></li>`)
				continue
			default:
				label = ui.Markup(fmt.Sprint(link.Page))
			}

			class := "page-item"
			if link.Disabled {
				class += " disabled"
			}
			if link.Active {
				class += " active"
			}
			w.Printf(`<li class="%s"><a class="page-link" href="#" data-on:click__prevent="@get('%s/tracking/page/%d')">%s</a></li>`,
				class, prefix, link.Page, label)
		}
		w.Raw(`</ul>`)
	})
}

// ListPatches replaces the table body and the pagination bar.
func ListPatches(prefix string, page *tracker.TrackingPage) []handler.TemplPatch {
	return []handler.TemplPatch{
		handler.Patch(TableBody(prefix, page.Records), handler.WithTarget("#"+TableBodyID), handler.WithPatchMode(handler.PatchOuter)),
		handler.Patch(Pagination(prefix, Paginate(page.CurrentPage, page.Pages)), handler.WithTarget("#"+PaginationID), handler.WithPatchMode(handler.PatchOuter)),
	}
}

// AdminPage is the tracking admin document. The table loads on init and
// a background stream keeps it fresh.
func AdminPage(prefix string, nav []ui.NavItem) templ.Component {
	return ui.Page("Tracking Admin", nav, ui.Component(func(w *ui.Writer) {
		w.Raw(`<div data-signals="{search: '', refreshing: false}">`)
		w.Raw(`<div class="d-flex justify-content-between align-items-center mb-3"><h2>Email Tracking</h2><div class="btn-group">`)
		w.Printf(`<button class="btn btn-outline-primary" data-indicator:refreshing data-attr:disabled="$refreshing" data-on:click="@post('%s/tracking/refresh')">Refresh</button>`, prefix)
		w.Printf(`<button class="btn btn-outline-danger" data-on:click="@get('%s/clear-database')">Clear Database</button>`, prefix)
		w.Raw(`</div></div>`)

		w.Raw(`<div class="input-group mb-3">`)
		w.Printf(`<input type="text" class="form-control" placeholder="Search by recipient email" data-bind:search data-on:keydown="evt.key === 'Enter' && @post('%s/tracking/search')">`, prefix)
		w.Printf(`<button class="btn btn-primary" data-on:click="@post('%s/tracking/search')">Search</button>`, prefix)
		w.Printf(`<button class="btn btn-outline-secondary" data-on:click="$search = ''; @post('%s/tracking/search/clear')">Clear</button>`, prefix)
		w.Raw(`</div>`)

		w.Raw(`<div class="table-responsive"><table class="table table-hover align-middle"><thead><tr>`)
		w.Raw(`<th>Recipient</th><th>Tracking ID</th><th>Opens</th><th>Clicks</th><th>Last Open</th><th>Last IP</th><th>Last Port</th><th>Created</th>`)
		w.Raw(`</tr></thead>`)
		w.Render(LoadingBody())
		w.Raw(`</table></div><nav>`)
		w.Render(Pagination(prefix, nil))
		w.Raw(`</nav>`)

		w.Printf(`<div data-init="@get('%s/tracking')"></div>`, prefix)
		w.Printf(`<div data-init="@get('%s/tracking/stream')"></div>`, prefix)
		w.Raw(`</div>`)
	}))
}

// DetailsLoading opens the details dialog in its loading state.
func DetailsLoading() handler.TemplPatch {
	return ui.OpenModal(ui.ModalProps{
		ID:    DetailsModalID,
		Title: "Tracking Details",
		Size:  ui.ModalLarge,
		Body:  ui.Spinner("Loading tracking details..."),
	})
}

// DetailsError is the inline failure shown inside the dialog.
func DetailsError(message string) templ.Component {
	return ui.Alert("danger", "Failed to load tracking details: "+message)
}

// DetailsBody renders the summary and the open history of a record. The
// history is listed newest first with the first row flagged as latest.
func DetailsBody(d *tracker.TrackingDetails, email string, now time.Time) templ.Component {
	rec := d.Tracking
	if email == "" {
		email = rec.RecipientEmail
	}
	subject := rec.Subject
	if subject == "" {
		subject = "No subject"
	}

	return ui.Component(func(w *ui.Writer) {
		w.Raw(`<div class="mb-4"><h6>Email Information</h6><div class="row"><div class="col-md-6">`)
		w.Printf(`<strong>Email:</strong> %s<br>`, email)
		w.Printf(`<strong>Tracking ID:</strong> <span class="tracking-id">%s</span><br>`, rec.TrackingID)
		w.Printf(`<strong>Total Opens:</strong> <span class="badge bg-success">%d</span><br>`, rec.OpenCount)
		w.Printf(`<strong>Total Clicks:</strong> <span class="badge bg-primary">%d</span>`, rec.ClickCount)
		w.Raw(`</div><div class="col-md-6">`)
		w.Printf(`<strong>Created:</strong> %s<br>`, timefmt.FormatDate(rec.CreatedAt.Ptr()))
		w.Printf(`<strong>Subject:</strong> %s<br>`, subject)
		w.Printf(`<strong>Last Open:</strong> %s<br>`, timefmt.FormatDate(rec.LastOpenTime.Ptr()))
		w.Printf(`<strong>Last Click:</strong> %s`, timefmt.FormatDate(rec.LastClickTime.Ptr()))
		w.Raw(`</div></div></div>`)

		if len(d.Opens) == 0 && rec.ClickCount == 0 {
			w.Render(ui.Alert("info", "This email has not been opened or clicked yet."))
			return
		}

		if len(d.Opens) > 0 {
			w.Printf(`<h6>Open History (%d events)</h6>`, len(d.Opens))
			w.Raw(`<div class="table-responsive mb-4"><table class="table table-striped table-sm"><thead><tr>`)
			w.Raw(`<th>Open Time</th><th>IP Address</th><th>Port</th><th>Time Ago</th></tr></thead><tbody>`)
			for i, open := range d.Opens {
				latest := i == 0
				rowClass, badge := "", ui.Markup("")
				if latest {
					rowClass, badge = "table-success", `<span class="badge bg-success ms-2">Latest</span>`
				}
				ago := "-"
				if !open.OpenTime.IsZero() {
					ago = timefmt.TimeAgo(now, open.OpenTime.Time)
				}
				w.Printf(`<tr class="%s"><td>%s%s</td><td><span class="font-monospace text-primary">%s</span></td><td><span class="font-monospace text-info">%s</span></td><td><small class="text-muted">%s</small></td></tr>`,
					rowClass, timefmt.FormatDate(open.OpenTime.Ptr()), badge, orDash(open.IP), orDash(open.Port.String()), ago)
			}
			w.Raw(`</tbody></table></div>`)
		}

		// Per-click events are not exposed by the backend; only the count is known.
		w.Printf(`<h6>Click History (%d events)</h6>`, rec.ClickCount)
		w.Render(ui.Alert("info", "Click events will be shown here when available."))
	})
}

// ClearDatabaseModal asks for the typed confirmation before wiping data.
func ClearDatabaseModal(prefix string) handler.TemplPatch {
	body := ui.Component(func(w *ui.Writer) {
		w.Raw(`<div data-signals="{confirmation: ''}">`)
		w.Raw(`<p class="text-danger">This permanently deletes every tracking record, open and click.</p>`)
		w.Printf(`<label class="form-label" for="confirm-delete">Type <strong>%s</strong> to confirm</label>`, tracker.ClearConfirmation)
		w.Raw(`<input id="confirm-delete" type="text" class="form-control" autocomplete="off" data-bind:confirmation>`)
		w.Raw(`</div>`)
	})
	footer := ui.Component(func(w *ui.Writer) {
		w.Printf(`<button type="button" class="btn btn-secondary" data-on:click="document.getElementById('%s').remove()">Cancel</button>`, ClearModalID)
		w.Printf(`<button type="button" class="btn btn-danger" data-indicator:deleting data-attr:disabled="$confirmation !== '%s' || $deleting" data-on:click="@post('%s/clear-database')">Delete All</button>`,
			tracker.ClearConfirmation, prefix)
	})
	return ui.OpenModal(ui.ModalProps{ID: ClearModalID, Title: "Clear Database", Body: body, Footer: footer})
}
