package handler

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ValidationError maps field names to messages.
type ValidationError url.Values

func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Error lists the first message of each field in field order.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "Validation failed"
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if msgs := e[field]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e ValidationError) Add(field, message string) { url.Values(e).Add(field, message) }
func (e ValidationError) Get(field string) string   { return url.Values(e).Get(field) }
func (e ValidationError) Has(field string) bool     { return len(e[field]) > 0 }
func (e ValidationError) IsEmpty() bool             { return len(e) == 0 }
