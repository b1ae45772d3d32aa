// Package tracking serves the admin tracking table: a paginated, searchable
// list of tracked emails with a per-email details dialog.
//
// Each browser page load owns one Controller holding the current page, the
// total page count and the active search term. Loads are numbered; a
// response that arrives after a newer load was issued is discarded with
// ErrStaleResponse so it can never overwrite newer data.
package tracking
