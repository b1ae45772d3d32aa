// Package session gives every browser an anonymous, cookie-bound session.
//
// The dashboard has no accounts; the session only identifies a browser so
// that per-browser UI state (current tracking page, search filter, uploaded
// image) is kept apart. Sessions are stored in memory or in Redis and the
// token travels in a signed cookie.
package session
