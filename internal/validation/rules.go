// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/weathervane/internal/errors"
)

var (
	// locationRegex accepts city names ("Lisbon", "Rio de Janeiro") and
	// coordinate pairs ("38.72,-9.14").
	locationRegex = regexp.MustCompile(`^[\p{L}\p{N}-][\p{L}\p{N} .,'\-]*$`)
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

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Location validates that a string looks like a city name or a "lat,lon" pair
var Location = validation.NewStringRuleWithError(
	func(s string) bool {
		return locationRegex.MatchString(s)
	},
	validation.NewError("validation_location_format", "must be a city name or a lat,lon pair"),
)
