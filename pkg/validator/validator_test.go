package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtrack/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	err := validator.Apply(
		validator.RequiredString("host", "  "),
		validator.NumBetween("port", 70000, 1, 65535),
		validator.RequiredString("username", "user"),
	)
	require.Error(t, err)
	assert.True(t, validator.IsValidationError(err))

	verrs := validator.ExtractValidationErrors(err)
	assert.Equal(t, []string{"field is required"}, verrs.Get("host"))
	assert.Equal(t, []string{"must be between 1 and 65535"}, verrs.Get("port"))
	assert.Empty(t, verrs.Get("username"))
	assert.Equal(t, "validation failed: host: field is required; port: must be between 1 and 65535", err.Error())

	assert.NoError(t, validator.Apply(validator.RequiredString("host", "smtp.example.com")))
}

func TestExtractValidationErrors_Wrapped(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("save: %w", validator.Apply(validator.RequiredString("host", "")))
	assert.Len(t, validator.ExtractValidationErrors(err), 1)
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
	assert.False(t, validator.IsValidationError(nil))
}

func TestRuleWithMessage(t *testing.T) {
	t.Parallel()
	err := validator.Apply(validator.RequiredSlice("emails", []string{}).WithMessage("Please enter at least one valid email address"))
	assert.Equal(t, []string{"Please enter at least one valid email address"}, validator.ExtractValidationErrors(err).Get("emails"))
}

func TestIsEmail(t *testing.T) {
	t.Parallel()
	valid := []string{"a@b.co", "first.last+tag@example.com", "x@sub.domain.org"}
	invalid := []string{"", "plain", "a@b", "a b@c.d", "@b.co", "a@b.", "a@@b.co"}
	for _, v := range valid {
		assert.True(t, validator.IsEmail(v), v)
	}
	for _, v := range invalid {
		assert.False(t, validator.IsEmail(v), v)
	}
}

func TestValidURLWithScheme(t *testing.T) {
	t.Parallel()
	schemes := []string{"http", "https"}
	assert.NoError(t, validator.Apply(validator.ValidURLWithScheme("url", "https://www.google.com", schemes)))
	assert.Error(t, validator.Apply(validator.ValidURLWithScheme("url", "ftp://files.example.com", schemes)))
	assert.Error(t, validator.Apply(validator.ValidURLWithScheme("url", "/relative", schemes)))
	assert.NoError(t, validator.Apply(validator.Optional("", validator.ValidURLWithScheme("url", "", schemes))))
}

func TestStringAndNumericRules(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validator.Apply(validator.Equals("confirmation", "DELETE ALL", "DELETE ALL")))
	assert.Error(t, validator.Apply(validator.Equals("confirmation", "delete all", "DELETE ALL")))
	assert.NoError(t, validator.Apply(validator.NumBetween("port", 1, 1, 65535)))
	assert.Error(t, validator.Apply(validator.NumBetween("port", 0, 1, 65535)))
}
