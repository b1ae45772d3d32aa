package dashboard_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailtrack/modules/dashboard"
	"github.com/dmitrymomot/mailtrack/modules/ui"
	"github.com/dmitrymomot/mailtrack/svc/tracker"
)

func sampleResults() []tracker.SendResult {
	return []tracker.SendResult{
		{Email: "a@example.com", Success: true, TrackingID: "t-1", ClickURL: "https://track.example.com/c/t-1"},
		{Email: "b@example.com", Success: false, Error: "mailbox <full>"},
		{Email: "c@example.com", Success: true, TrackingID: "t-3"},
	}
}

func TestPartition(t *testing.T) {
	t.Parallel()

	ok, failed := dashboard.Partition(sampleResults())
	assert.Equal(t, []string{"a@example.com", "c@example.com"}, []string{ok[0].Email, ok[1].Email})
	assert.Len(t, failed, 1)
	assert.Equal(t, "b@example.com", failed[0].Email)

	ok, failed = dashboard.Partition(nil)
	assert.Empty(t, ok)
	assert.Empty(t, failed)
}

func TestResultsReport(t *testing.T) {
	t.Parallel()

	html := ui.RenderString(context.Background(), dashboard.ResultsReport(sampleResults()))
	assert.Contains(t, html, "2 successful, 1 failed")
	assert.Contains(t, html, "Successful (2)")
	assert.Contains(t, html, "Failed (1)")
	assert.Contains(t, html, `value="https://track.example.com/c/t-1"`)
	assert.Contains(t, html, "mailbox &lt;full&gt;")
	assert.NotContains(t, html, "<full>")
	assert.Equal(t, 1, strings.Count(html, "Click Tracking URL"))
	assert.Contains(t, html, `data-copy="https://track.example.com/c/t-1" data-copied="Click tracking URL copied to clipboard!"`)
}

func TestResultsReport_OnlyFailures(t *testing.T) {
	t.Parallel()

	html := ui.RenderString(context.Background(), dashboard.ResultsReport([]tracker.SendResult{{Email: "x@example.com", Error: "rejected"}}))
	assert.Contains(t, html, "0 successful, 1 failed")
	assert.NotContains(t, html, "Successful (")
}
