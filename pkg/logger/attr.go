package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// SessionID records the browser session identifier under the key "session_id".
func SessionID(id string) slog.Attr {
	return slog.String("session_id", id)
}

// TrackingID records a tracking record identifier under the key "tracking_id".
func TrackingID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("tracking_id", id)
}

// Page records a tracking list page number under the key "page".
func Page(page int) slog.Attr {
	return slog.Int("page", page)
}

// Search records the active recipient filter under the key "search".
func Search(term string) slog.Attr {
	return slog.String("search", term)
}

// Recipients records how many recipients a bulk send addressed.
func Recipients(n int) slog.Attr {
	return slog.Int("recipients", n)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
