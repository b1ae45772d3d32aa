// Package cache provides a typed, expiring registry of per-key values.
//
// Entries expire after a period of inactivity; every Get or GetOrCreate
// restarts the timer. The dashboard keeps one UI controller per browser
// session in a Registry so that abandoned sessions release their state.
package cache
