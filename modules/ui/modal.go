package ui

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailtrack/handler"
)

// ModalRootID is the element modals are rendered into.
const ModalRootID = "modal-root"

// ModalSize selects the dialog width.
type ModalSize string

const (
	ModalDefault ModalSize = ""
	ModalLarge   ModalSize = "modal-lg"
)

// ModalProps describes a dialog.
type ModalProps struct {
	ID     string
	Title  string
	Size   ModalSize
	Body   templ.Component
	Footer templ.Component
}

// Modal renders an open dialog. The body lives in an element with id
// "<ID>-body" so it can be patched on its own.
func Modal(p ModalProps) templ.Component {
	return Component(func(w *Writer) {
		w.Printf(`<div id="%s" class="modal d-block" tabindex="-1" role="dialog" aria-modal="true">`, p.ID)
		w.Printf(`<div class="modal-dialog %s"><div class="modal-content">`, string(p.Size))
		w.Printf(`<div class="modal-header"><h5 class="modal-title">%s</h5>`, p.Title)
		w.Printf(`<button type="button" class="btn-close" aria-label="Close" data-on:click="document.getElementById('%s').remove()"></button></div>`, p.ID)
		w.Printf(`<div id="%s" class="modal-body">`, BodyID(p.ID))
		w.Render(p.Body)
		w.Raw(`</div>`)
		if p.Footer != nil {
			w.Raw(`<div class="modal-footer">`)
			w.Render(p.Footer)
			w.Raw(`</div>`)
		}
		w.Raw(`</div></div></div>`)
	})
}

// BodyID is the id of the modal body element.
func BodyID(modalID string) string {
	return modalID + "-body"
}

// OpenModal patches a dialog into the modal root, replacing any open one.
func OpenModal(p ModalProps) handler.TemplPatch {
	return handler.Patch(Modal(p), handler.WithTarget("#"+ModalRootID), handler.WithPatchMode(handler.PatchInner))
}

// ModalBody replaces the body of an open dialog.
func ModalBody(modalID string, body templ.Component) handler.TemplPatch {
	return handler.Patch(body, handler.WithTarget("#"+BodyID(modalID)), handler.WithPatchMode(handler.PatchInner))
}

// CloseModal removes the dialog.
func CloseModal(modalID string) handler.TemplPatch {
	return handler.Patch(Component(func(*Writer) {}), handler.WithTarget("#"+modalID), handler.WithPatchMode(handler.PatchRemove))
}

// Spinner is the loading indicator used inside tables and modals.
func Spinner(label string) templ.Component {
	return Component(func(w *Writer) {
		w.Raw(`<div class="text-center py-4"><div class="spinner-border text-primary" role="status"><span class="visually-hidden">Loading...</span></div>`)
		if label != "" {
			w.Printf(`<div class="mt-2">%s</div>`, label)
		}
		w.Raw(`</div>`)
	})
}

// Alert renders an inline alert box.
func Alert(kind, message string) templ.Component {
	return Component(func(w *Writer) {
		w.Printf(`<div class="alert alert-%s">%s</div>`, kind, message)
	})
}
