package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/tair/population/pkg/apperror"
)

const (
	MaxNameLength    = 100
	maxDecimalPlaces = 2
	maxDigits        = 10

	// minExponent allows trailing zeros such as "1.5000" while keeping
	// rounding and comparison on small coefficients.
	minExponent = -32
)

// decimal(10,2) holds at most 8 digits before the point.
var maxWholePart = decimal.New(1, maxDigits-maxDecimalPlaces)

// ValidateName checks a required name field.
func ValidateName(errs *apperror.ValidationError, field, name string) {
	switch {
	case strings.TrimSpace(name) == "":
		errs.Add(field, "This field is required.")
	case utf8.RuneCountInString(name) > MaxNameLength:
		errs.Add(field, "Ensure this field has no more than 100 characters.")
	}
}

// DecimalInBounds reports whether d's exponent is small enough to round and
// compare. Values outside it cannot fit a decimal(10,2) column anyway,
// except zeros spelled with a huge exponent.
func DecimalInBounds(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= minExponent && exp <= maxDigits
}

// ValidateDecimal checks that d fits a decimal(10,2) column and, when
// nonNegative is set, that it is not below zero.
func ValidateDecimal(errs *apperror.ValidationError, field string, d decimal.Decimal, nonNegative bool) {
	switch {
	case !DecimalInBounds(d):
		errs.Add(field, "A valid number is required.")
	case !d.Equal(d.Round(maxDecimalPlaces)):
		errs.Add(field, "Ensure that there are no more than 2 decimal places.")
	case d.Abs().GreaterThanOrEqual(maxWholePart):
		errs.Add(field, "Ensure that there are no more than 10 digits in total.")
	case nonNegative && d.IsNegative():
		errs.Add(field, "Ensure this value is greater than or equal to 0.")
	}
}
