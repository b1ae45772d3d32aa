package tracking

import "errors"

var (
	// ErrStaleResponse reports a load superseded by a newer one.
	ErrStaleResponse = errors.New("tracking: stale response discarded")
	// ErrNavigationIgnored reports a page change that needs no request.
	ErrNavigationIgnored = errors.New("tracking: page change ignored")
	ErrMissingTrackingID = errors.New("tracking: tracking id is required")
)
