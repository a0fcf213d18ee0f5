// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/recordseal/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// DateLayout is the calendar date format used for dates of birth.
const DateLayout = "2006-01-02"

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

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

// Date validates a YYYY-MM-DD calendar date.
var Date = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := time.Parse(DateLayout, s)
		return err == nil
	},
	validation.NewError("validation_date_format", "must be a date in YYYY-MM-DD format"),
)

// PrintableASCII validates that a string only holds visible ASCII characters (no spaces or
// control characters). Envelope payloads always satisfy it.
var PrintableASCII = validation.NewStringRuleWithError(
	func(s string) bool {
		for i := 0; i < len(s); i++ {
			if s[i] <= 0x20 || s[i] >= 0x7f {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_printable_ascii", "must only contain printable ASCII characters"),
)
