package dashboard

import "errors"

var (
	// ErrSMTPNotConfigured blocks sends until settings are saved.
	ErrSMTPNotConfigured = errors.New("dashboard: smtp is not configured")
	ErrNotConfirmed      = errors.New("dashboard: action was not confirmed")
	ErrNoFile            = errors.New("dashboard: no file selected")
	ErrNotImage          = errors.New("dashboard: file is not an image")
)
