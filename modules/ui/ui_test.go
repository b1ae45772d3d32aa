package ui_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtrack/handler"
	"github.com/dmitrymomot/mailtrack/modules/ui"
)

func TestWriterEscapesArguments(t *testing.T) {
	t.Parallel()

	c := ui.Component(func(w *ui.Writer) {
		w.Printf(`<td title="%s">%s %d %s</td>`, `"quoted"`, "<script>alert(1)</script>", 42, ui.Markup("<b>ok</b>"))
	})
	out := ui.RenderString(context.Background(), c)

	assert.Equal(t, `<td title="&#34;quoted&#34;">&lt;script&gt;alert(1)&lt;/script&gt; 42 <b>ok</b></td>`, out)
}

func TestWriterNestsComponents(t *testing.T) {
	t.Parallel()

	inner := ui.Component(func(w *ui.Writer) { w.Text("a & b") })
	out := ui.RenderString(context.Background(), ui.Component(func(w *ui.Writer) {
		w.Printf(`<p>%s</p>`, inner)
		w.Render(ui.Component(func(w *ui.Writer) { w.Text("<x>") }))
	}))
	assert.Equal(t, `<p>a &amp; b</p>&lt;x&gt;`, out)
}

func TestCopyAttrs(t *testing.T) {
	t.Parallel()

	out := ui.RenderString(context.Background(), ui.Component(func(w *ui.Writer) {
		w.Printf(`<button %s>Copy</button>`, ui.CopyAttrs(`https://t.example.com/c?u="x"&id=1`, "Tracking ID copied to clipboard!"))
	}))
	assert.Contains(t, out, `data-copy="https://t.example.com/c?u=&#34;x&#34;&amp;id=1"`)
	assert.Contains(t, out, `data-copied="Tracking ID copied to clipboard!"`)
	assert.Contains(t, out, `navigator.clipboard.writeText(el.dataset.copy)`)
	assert.Contains(t, out, `getElementById('copy-toast')`)
	assert.Contains(t, out, `getElementById('toast-container').prepend(t)`)
}

func TestToast(t *testing.T) {
	t.Parallel()

	tests := map[ui.Level]string{
		ui.LevelSuccess: "bg-success text-white",
		ui.LevelError:   "bg-danger text-white",
		ui.LevelWarning: "bg-warning text-dark",
		ui.LevelInfo:    "bg-info text-white",
	}
	for level, class := range tests {
		out := ui.RenderString(context.Background(), ui.Toast(level, "<saved>"))
		assert.Contains(t, out, class)
		assert.Contains(t, out, "&lt;saved&gt;")
		assert.NotContains(t, out, "<saved>")
	}
}

func TestNotifyPatchesToastContainer(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/smtp/config", nil)
	req.Header.Set(handler.DataStarRequestHeader, "true")

	require.NoError(t, handler.TemplMulti(ui.Notify(ui.LevelSuccess, "Saved")).Render(rec, req))

	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "#toast-container")
	assert.Contains(t, body, "prepend")
	assert.Contains(t, body, "Saved")
}

func TestModal(t *testing.T) {
	t.Parallel()

	out := ui.RenderString(context.Background(), ui.Modal(ui.ModalProps{
		ID:    "details",
		Title: "Tracking <Details>",
		Size:  ui.ModalLarge,
		Body:  ui.Spinner("Loading tracking details..."),
	}))
	assert.Contains(t, out, `id="details"`)
	assert.Contains(t, out, `id="details-body"`)
	assert.Contains(t, out, "modal-lg")
	assert.Contains(t, out, "Tracking &lt;Details&gt;")
	assert.Contains(t, out, "Loading tracking details...")
	assert.Equal(t, "details-body", ui.BodyID("details"))
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	out := ui.RenderString(context.Background(), ui.ErrorPage(handler.ErrorPageParams{
		Error:      "Backend <down>",
		StatusCode: http.StatusBadGateway,
		RequestID:  "req-1",
		RetryURL:   "/admin",
	}))
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Bad Gateway")
	assert.Contains(t, out, "Backend &lt;down&gt;")
	assert.Contains(t, out, "req-1")
	assert.Contains(t, out, `href="/admin"`)
	assert.Contains(t, out, `id="toast-container"`)
	assert.Contains(t, out, `<template id="copy-toast"><div class="toast show bg-success text-white"`)
}

func TestErrorToastLevel(t *testing.T) {
	t.Parallel()

	out := ui.RenderString(context.Background(), ui.ErrorToast(handler.ErrorToastParams{Message: "bad input", Type: "warning"}))
	assert.Contains(t, out, "bg-warning")
	out = ui.RenderString(context.Background(), ui.ErrorToast(handler.ErrorToastParams{Message: "boom", Type: "error"}))
	assert.Contains(t, out, "bg-danger")
}
