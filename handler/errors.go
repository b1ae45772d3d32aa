package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse       = errors.New("handler returned nil response")
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
)

// HTTPError is an error with a status code and a message safe to show users.
type HTTPError struct {
	Code    int
	Message string
}

func (e HTTPError) Error() string { return e.Message }

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Message: "Not found"}
	ErrRequestTooLarge     = HTTPError{Code: http.StatusRequestEntityTooLarge, Message: "Request entity too large"}
	ErrUnsupportedMedia    = HTTPError{Code: http.StatusUnsupportedMediaType, Message: "Unsupported media type"}
	ErrBadGateway          = HTTPError{Code: http.StatusBadGateway, Message: "Backend request failed"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Message: "An error occurred processing your request"}
)

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}
