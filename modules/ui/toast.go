package ui

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailtrack/handler"
)

// Level is the severity of a toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

const (
	// ToastContainerID is the element toasts are prepended into.
	ToastContainerID = "toast-container"
	// CopyToastID is the page template cloned for clipboard confirmations.
	CopyToastID = "copy-toast"
)

const copyScript = `navigator.clipboard.writeText(el.dataset.copy).then(() => {` +
	`const t = document.getElementById('` + CopyToastID + `').content.firstElementChild.cloneNode(true); ` +
	`t.querySelector('.toast-body').textContent = el.dataset.copied; ` +
	`document.getElementById('` + ToastContainerID + `').prepend(t)})`

// Class returns the toast colour classes of the level.
func (l Level) Class() string {
	switch l {
	case LevelSuccess:
		return "bg-success text-white"
	case LevelError:
		return "bg-danger text-white"
	case LevelWarning:
		return "bg-warning text-dark"
	default:
		return "bg-info text-white"
	}
}

// Toast is a self-dismissing notification.
func Toast(level Level, message string) templ.Component {
	return Component(func(w *Writer) {
		w.Printf(`<div class="toast show %s" role="alert" data-init="setTimeout(() => el.remove(), 5000)">`+
			`<div class="d-flex"><div class="toast-body">%s</div>`+
			`<button type="button" class="btn-close btn-close-white me-2 m-auto" aria-label="Close" data-on:click="el.closest('.toast').remove()"></button>`+
			`</div></div>`,
			level.Class(), message)
	})
}

// CopyAttrs returns the attributes of an element that copies value to the
// clipboard on click and then shows message as a success toast.
func CopyAttrs(value, message string) Markup {
	return Markup(fmt.Sprintf(`data-copy="%s" data-copied="%s" data-on:click="%s"`,
		templ.EscapeString(value), templ.EscapeString(message), copyScript))
}

// Notify patches a toast into the toast container.
func Notify(level Level, message string) handler.TemplPatch {
	return handler.Patch(Toast(level, message),
		handler.WithTarget("#"+ToastContainerID),
		handler.WithPatchMode(handler.PatchPrepend),
	)
}

// ErrorToast renders the toast shown by the request error handler.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	level := LevelError
	switch p.Type {
	case "warning":
		level = LevelWarning
	case "info":
		level = LevelInfo
	}
	return Toast(level, p.Message)
}
