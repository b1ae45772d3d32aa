// Package ui holds the shared page shell and the toast and modal widgets.
//
// Components are built with Component and a Writer whose Printf escapes
// every argument unless it is Markup or a component. Literal markup lives
// only in format strings.
package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Markup is trusted HTML written without escaping.
type Markup string

// Writer accumulates the first write error.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

// Component turns fn into a templ component.
func Component(fn func(w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &Writer{ctx: ctx, w: out}
		fn(w)
		return w.err
	})
}

// Raw writes trusted markup.
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Text writes s escaped.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Printf writes format verbatim with every argument escaped.
func (w *Writer) Printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	safe := make([]any, len(args))
	for i, arg := range args {
		safe[i] = w.escape(arg)
	}
	_, w.err = fmt.Fprintf(w.w, format, safe...)
}

// Render writes a nested component.
func (w *Writer) Render(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(w.ctx, w.w)
}

func (w *Writer) escape(arg any) any {
	switch v := arg.(type) {
	case Markup:
		return string(v)
	case templ.Component:
		var buf bytes.Buffer
		if err := v.Render(w.ctx, &buf); err != nil && w.err == nil {
			w.err = err
		}
		return buf.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
		return v
	case string:
		return templ.EscapeString(v)
	default:
		return templ.EscapeString(fmt.Sprint(v))
	}
}

// RenderString renders c to a string. Errors yield "".
func RenderString(ctx context.Context, c templ.Component) string {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return ""
	}
	return buf.String()
}
