package validator

import (
	"fmt"
	"strings"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{Field: field, Message: "field is required"},
	}
}

// Equals validates an exact match, such as a typed confirmation phrase.
func Equals(field, value, expected string) Rule {
	return Rule{
		Check: func() bool {
			return value == expected
		},
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be %q", expected)},
	}
}
