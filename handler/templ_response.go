package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// TemplComponent matches templ.Component without importing it.
type TemplComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// TemplOption is a Datastar element patch option.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector the patch is applied to.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the patch is merged into the DOM.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is one unit of a multi-patch response: either a component with
// its options or a set of signals.
type TemplPatch struct {
	Component TemplComponent
	Options   []TemplOption
	Signals   map[string]any
}

// Patch creates a component patch for TemplMulti.
func Patch(component TemplComponent, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

// Signals creates a signal patch for TemplMulti. It is ignored for regular
// HTML requests.
func Signals(signals map[string]any) TemplPatch {
	return TemplPatch{Signals: signals}
}

func (p TemplPatch) send(sse *datastar.ServerSentEventGenerator) error {
	if p.Signals != nil {
		data, err := json.Marshal(p.Signals)
		if err != nil {
			return fmt.Errorf("marshal signals: %w", err)
		}
		if err := sse.PatchSignals(data); err != nil {
			return err
		}
	}
	if p.Component != nil {
		return sse.PatchElementTempl(p.Component, p.Options...)
	}
	return nil
}

type templResponse struct {
	component TemplComponent
	options   []TemplOption
	status    int
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.component, t.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.component.Render(r.Context(), w)
}

// Templ renders component as a patch for Datastar requests and as an HTML
// document otherwise.
func Templ(component TemplComponent, opts ...TemplOption) Response {
	return templResponse{component: component, options: opts}
}

// TemplWithStatus is Templ with an explicit status code for regular requests.
// Datastar streams always answer 200.
func TemplWithStatus(status int, component TemplComponent, opts ...TemplOption) Response {
	return templResponse{component: component, options: opts, status: status}
}

type templPartialResponse struct {
	partial TemplComponent
	full    TemplComponent
	options []TemplOption
}

func (t templPartialResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.full.Render(r.Context(), w)
}

// TemplPartial patches partial for Datastar requests and renders full otherwise.
func TemplPartial(partial, full TemplComponent, opts ...TemplOption) Response {
	return templPartialResponse{partial: partial, full: full, options: opts}
}

type templMultiResponse struct {
	patches []TemplPatch
}

func (t templMultiResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := p.send(sse); err != nil {
				return err
			}
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, p := range t.patches {
		if p.Component == nil {
			continue
		}
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// TemplMulti sends every patch in order as its own event. Regular requests
// get the components concatenated.
func TemplMulti(patches ...TemplPatch) Response {
	return templMultiResponse{patches: patches}
}
