package dashboard

import (
	"strings"

	"github.com/dmitrymomot/mailtrack/pkg/validator"
)

// ParseRecipients splits text on newlines and keeps the trimmed lines that
// look like email addresses, in input order. Duplicates are kept.
func ParseRecipients(text string) []string {
	var emails []string
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !validator.IsEmail(line) {
			continue
		}
		emails = append(emails, line)
	}
	return emails
}
