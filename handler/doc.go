// Package handler adapts typed handler functions to net/http.
//
// A HandlerFunc receives a Context and a request value populated by binders
// and returns a Response. Responses know how to render themselves both as a
// plain HTML document and as Datastar server-sent events, so the same
// handler serves a full page load and an in-place patch:
//
//	type pageRequest struct {
//		Page int `path:"page"`
//	}
//
//	r.Get("/tracking/page/{page}", handler.Wrap(
//		func(ctx handler.Context, req pageRequest) handler.Response {
//			return handler.Templ(views.Table(rows), handler.WithTarget("#tracking-table"))
//		},
//		handler.WithBinders[handler.Context, pageRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, pageRequest](errHandler),
//	))
//
// Errors returned while binding or rendering go to the ErrorHandler.
// NewErrorHandler renders an error page for regular requests and a toast for
// Datastar requests.
package handler
