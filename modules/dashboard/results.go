package dashboard

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailtrack/modules/ui"
	"github.com/dmitrymomot/mailtrack/svc/tracker"
)

// Partition splits results into successes and failures, keeping order.
func Partition(results []tracker.SendResult) (ok, failed []tracker.SendResult) {
	for _, r := range results {
		if r.Success {
			ok = append(ok, r)
		} else {
			failed = append(failed, r)
		}
	}
	return ok, failed
}

// ResultsReport summarizes a bulk send: counts, then the successful
// recipients with their tracking ids and click URLs, then the failures.
func ResultsReport(results []tracker.SendResult) templ.Component {
	ok, failed := Partition(results)
	return ui.Component(func(w *ui.Writer) {
		w.Raw(`<div class="row">`)
		w.Printf(`<div class="col-12 mb-3"><div class="alert alert-info"><strong>Summary:</strong> %d successful, %d failed</div></div>`,
			len(ok), len(failed))

		if len(ok) > 0 {
			w.Printf(`<div class="col-md-6"><h6 class="text-success">Successful (%d)</h6><div class="list-group mb-3">`, len(ok))
			for _, r := range ok {
				w.Raw(`<div class="list-group-item"><div class="d-flex justify-content-between align-items-center mb-2">`)
				w.Printf(`<span>%s</span><small class="tracking-id">%s</small></div>`, r.Email, r.TrackingID)
				if r.ClickURL != "" {
					w.Raw(`<div class="mt-2"><label class="form-label small">Click Tracking URL:</label><div class="input-group input-group-sm">`)
					w.Printf(`<input type="text" class="form-control" value="%s" readonly>`, r.ClickURL)
					w.Printf(`<button type="button" class="btn btn-outline-secondary" %s>Copy</button>`,
						ui.CopyAttrs(r.ClickURL, "Click tracking URL copied to clipboard!"))
					w.Raw(`</div></div>`)
				}
				w.Raw(`</div>`)
			}
			w.Raw(`</div></div>`)
		}

		if len(failed) > 0 {
			w.Printf(`<div class="col-md-6"><h6 class="text-danger">Failed (%d)</h6><div class="list-group mb-3">`, len(failed))
			for _, r := range failed {
				w.Printf(`<div class="list-group-item"><div class="mb-1">%s</div><small class="text-danger">%s</small></div>`, r.Email, r.Error)
			}
			w.Raw(`</div></div>`)
		}
		w.Raw(`</div>`)
	})
}
