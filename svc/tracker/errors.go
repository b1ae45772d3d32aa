package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrRequest matches every failed backend call; use errors.As with *RequestError for details.
	ErrRequest       = errors.New("tracker request failed")
	ErrInvalidURL    = errors.New("invalid tracker base URL")
	ErrInvalidBody   = errors.New("tracker response is not valid JSON")
	ErrUnsuccessful  = errors.New("tracker reported failure")
	ErrTransport     = errors.New("tracker transport failure")
	ErrMissingFile   = errors.New("upload requires a file")
	ErrMissingRecord = errors.New("tracking id is required")
)

// fallbackMessage is shown when the backend gives no message of its own.
const fallbackMessage = "Request failed"

// RequestError carries the human readable reason of a failed call.
// Message is what the dashboard shows to the user, verbatim.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// PublicMessage returns the text shown to the user.
func (e *RequestError) PublicMessage() string {
	if e.Message == "" {
		return fallbackMessage
	}
	return e.Message
}

func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRequest}
	}
	return []error{ErrRequest, e.Err}
}

// Message extracts the user-facing message from err.
// Errors that did not come from the client are reported with their own text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return err.Error()
}
