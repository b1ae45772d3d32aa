package validator

import "fmt"

// NumBetween validates min <= value <= max.
func NumBetween[T Numeric](field string, value T, min T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min && value <= max
		},
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be between %v and %v", min, max)},
	}
}
