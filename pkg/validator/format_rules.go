package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// emailRegex is deliberately loose: something@something.something with no spaces.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether value looks like an email address.
func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// ValidURLWithScheme validates an absolute URL whose scheme is one of schemes.
func ValidURLWithScheme(field, value string, schemes []string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			u, err := url.ParseRequestURI(value)
			if err != nil || u.Host == "" {
				return false
			}
			return slices.Contains(schemes, u.Scheme)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be a valid URL with scheme: %s", strings.Join(schemes, ", ")),
		},
	}
}

// Optional skips rule when value is blank.
func Optional(value string, rule Rule) Rule {
	check := rule.Check
	rule.Check = func() bool {
		return strings.TrimSpace(value) == "" || check()
	}
	return rule
}
