package cookie

import "errors"

var (
	// ErrNoSecret means no signing secret was configured.
	ErrNoSecret       = errors.New("cookie: no signing secret configured")
	ErrSecretTooShort = errors.New("cookie: signing secret too short")

	ErrCookieNotFound   = errors.New("cookie: not found")
	ErrInvalidFormat    = errors.New("cookie: malformed signed value")
	ErrInvalidSignature = errors.New("cookie: signature mismatch")
)
