// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/redeemly/vouchers/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

var errNotBlank = validation.NewError("validation_not_blank", "must not be blank")

// NotBlank validates that a string is not empty after trimming whitespace.
// Built with validation.By because the stock string rules skip empty values,
// and an empty string is exactly what this rule must reject. Nil pointers
// still pass: an absent optional field is not a blank one.
var NotBlank = validation.By(func(value any) error {
	var s string

	switch v := value.(type) {
	case nil:
		return nil
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return errNotBlank
	}

	if strings.TrimSpace(s) == "" {
		return errNotBlank
	}

	return nil
})
