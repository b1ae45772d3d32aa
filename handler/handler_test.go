package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtrack/handler"
	"github.com/dmitrymomot/mailtrack/pkg/binder"
)

type textComponent string

func (c textComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(c))
	return err
}

type pageRequest struct {
	Page   int    `query:"page"`
	Search string `query:"search"`
}

func TestWrapBindsAndRenders(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(
		func(ctx handler.Context, req pageRequest) handler.Response {
			return handler.Templ(textComponent("page " + req.Search))
		},
		handler.WithBinders[handler.Context, pageRequest](binder.Query()),
	)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?page=2&search=bob", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "page bob", rec.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestWrapSkipsInapplicableBinders(t *testing.T) {
	t.Parallel()

	called := false
	h := handler.Wrap(
		func(ctx handler.Context, req pageRequest) handler.Response {
			called = true
			return handler.Templ(textComponent("ok"))
		},
		handler.WithBinders[handler.Context, pageRequest](binder.Form()),
	)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestWrapBindErrorGoesToErrorHandler(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		func(ctx handler.Context, req pageRequest) handler.Response {
			t.Fatal("handler must not run")
			return nil
		},
		handler.WithBinders[handler.Context, pageRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, pageRequest](func(ctx handler.Context, err error) {
			got = err
			ctx.ResponseWriter().WriteHeader(http.StatusBadRequest)
		}),
	)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?page=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.ErrorIs(t, got, binder.ErrInvalidQuery)
}

func TestWrapNilResponse(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		func(ctx handler.Context, req struct{}) handler.Response { return nil },
		handler.WithErrorHandler[handler.Context, struct{}](func(ctx handler.Context, err error) { got = err }),
	)
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, got, handler.ErrNilResponse)
}

func TestWrapDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response {
		return failingResponse{err: handler.ErrNotFound}
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not found")

	h = handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response {
		return failingResponse{err: errors.New("secret internals")}
	})
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestWrapDecoratorOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) handler.Decorator[handler.Context, struct{}] {
		return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(
		func(ctx handler.Context, req struct{}) handler.Response {
			order = append(order, "handler")
			return handler.Templ(textComponent(""))
		},
		handler.WithDecorators(mark("outer"), mark("inner")),
	)
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestContextSSEIsLazy(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := handler.NewContext(rec, req)
	assert.Nil(t, ctx.SSE())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/event-stream")
	ctx = handler.NewContext(rec, req)
	assert.Empty(t, rec.Header().Get("Content-Type"))

	sse := ctx.SSE()
	require.NotNil(t, sse)
	assert.Same(t, sse, ctx.SSE())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  bool
	}{
		{"plain", func(r *http.Request) {}, false},
		{"accept header", func(r *http.Request) { r.Header.Set("Accept", "text/event-stream") }, true},
		{"request header", func(r *http.Request) { r.Header.Set("Datastar-Request", "true") }, true},
		{"query param", func(r *http.Request) { r.URL.RawQuery = "datastar=%7B%7D" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(r)
			assert.Equal(t, tt.want, handler.IsDataStar(r))
		})
	}
}

type failingResponse struct{ err error }

func (f failingResponse) Render(http.ResponseWriter, *http.Request) error { return f.err }
