package ui

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailtrack/handler"
)

// DatastarScript is the client bundle matching datastar-go v1.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// NavItem is an entry of the top navigation.
type NavItem struct {
	Title  string
	Href   string
	Active bool
}

// Page is the document shell shared by the dashboard and the admin page.
func Page(title string, nav []NavItem, body templ.Component) templ.Component {
	return Component(func(w *Writer) {
		w.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Printf(`<title>%s</title>`, title)
		w.Printf(`<script type="module" src="%s"></script>`, DatastarScript)
		w.Raw(`</head><body>`)
		w.Raw(`<nav class="navbar navbar-dark bg-dark mb-4"><div class="container"><span class="navbar-brand">Simple Email Tracker</span><ul class="navbar-nav flex-row gap-3">`)
		for _, item := range nav {
			class := "nav-link"
			if item.Active {
				class += " active"
			}
			w.Printf(`<li class="nav-item"><a class="%s" href="%s">%s</a></li>`, class, item.Href, item.Title)
		}
		w.Raw(`</ul></div></nav><main class="container">`)
		w.Render(body)
		w.Printf(`</main><div id="%s"></div><div id="%s" class="toast-container position-fixed top-0 end-0 p-3"></div>`, ModalRootID, ToastContainerID)
		w.Printf(`<template id="%s">%s</template>`, CopyToastID, Toast(LevelSuccess, ""))
		w.Raw(`</body></html>`)
	})
}

// ErrorPage renders the page shown by the request error handler.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	title := http.StatusText(p.StatusCode)
	if title == "" {
		title = "Error " + strconv.Itoa(p.StatusCode)
	}
	return Page(title, nil, Component(func(w *Writer) {
		w.Printf(`<div class="alert alert-danger"><h4 class="alert-heading">%s</h4><p>%s</p>`, title, p.Error)
		if p.RequestID != "" {
			w.Printf(`<small class="text-muted">Request ID: %s</small>`, p.RequestID)
		}
		if p.RetryURL != "" {
			w.Printf(`<div class="mt-3"><a class="btn btn-outline-danger" href="%s">Try again</a></div>`, p.RetryURL)
		}
		w.Raw(`</div>`)
	}))
}

// ErrorHandlerConfig wires the error page and toast into handler.NewErrorHandler.
func ErrorHandlerConfig() handler.ErrorHandlerConfig {
	return handler.ErrorHandlerConfig{
		ErrorPage:   ErrorPage,
		ErrorToast:  ErrorToast,
		ToastTarget: "#" + ToastContainerID,
		ToastMode:   handler.PatchPrepend,
	}
}
