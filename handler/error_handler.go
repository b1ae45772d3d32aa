package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/mailtrack/pkg/binder"
	"github.com/dmitrymomot/mailtrack/pkg/logger"
	"github.com/dmitrymomot/mailtrack/pkg/requestid"
)

// PublicError is an error whose message may be shown to the user as is.
// Failures of the tracking backend implement it.
type PublicError interface {
	error
	PublicMessage() string
}

// ErrorPageParams feeds the full-page error component.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feeds the toast component used for Datastar requests.
type ErrorToastParams struct {
	Message   string
	Type      string // error, warning or info
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget defaults to "#toast-container".
	ToastTarget string
	// ToastMode defaults to PatchPrepend.
	ToastMode datastar.ElementPatchMode
}

// ErrorInfo is the classification of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

func isClientError(code int) bool {
	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    ErrInternalServerError.Message,
	}

	var pubErr PublicError
	if errors.As(err, &pubErr) {
		info.StatusCode = http.StatusBadGateway
		info.Message = pubErr.PublicMessage()
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Message
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode = http.StatusUnsupportedMediaType
		info.Message = "Unsupported request format"
	case errors.Is(err, binder.ErrInvalidForm),
		errors.Is(err, binder.ErrInvalidQuery),
		errors.Is(err, binder.ErrInvalidPath),
		errors.Is(err, binder.ErrInvalidSignals):
		info.StatusCode = http.StatusBadRequest
		info.Message = "Invalid request data"
	}

	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		info.StatusCode = http.StatusBadRequest
		info.Message = formatValidationErrors(validationErr)
	}

	switch {
	case isClientError(info.StatusCode):
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	case info.StatusCode >= http.StatusInternalServerError:
		info.Type = "error"
		info.LogLevel = slog.LevelError
	default:
		info.Type = "info"
		info.LogLevel = slog.LevelError
	}
	return info
}

func formatValidationErrors(v ValidationError) string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var messages []string
	for _, field := range fields {
		messages = append(messages, v[field]...)
	}
	if len(messages) == 0 {
		return "Validation failed"
	}
	return strings.Join(messages, "; ")
}

// NewErrorHandler returns an error handler that logs err and answers with
// an error page, or with a toast when the request came from Datastar.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		if IsDataStar(r) {
			renderToast(ctx, cfg, info, reqID, log)
			return
		}
		renderPage(ctx, cfg, info, reqID, log)
	}
}

func renderToast(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, reqID string, log *slog.Logger) {
	if cfg.ErrorToast == nil {
		log.WarnContext(ctx, "no error toast component configured", logger.Component("error_handler"))
		return
	}
	resp := Templ(
		cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: reqID}),
		WithTarget(cfg.ToastTarget),
		WithPatchMode(cfg.ToastMode),
	)
	if err := resp.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.ErrorContext(ctx, "failed to render error toast", logger.Error(err), logger.Event("render_error_toast"))
	}
}

func renderPage(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, reqID string, log *slog.Logger) {
	if cfg.ErrorPage == nil {
		http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
		return
	}
	resp := TemplWithStatus(info.StatusCode, cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  reqID,
		RetryURL:   ctx.Request().URL.Path,
	}))
	if err := resp.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.ErrorContext(ctx, "failed to render error page", logger.Error(err), logger.Event("render_error_page"))
	}
}
