// Package vin normalizes and validates Vehicle Identification Numbers.
//
// Only the length is checked. The check digit is deliberately not verified:
// the decoding API accepts malformed VINs and answers with sparse results.
package vin

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Length is the number of characters in a VIN
const Length = 17

// ErrInvalidLength is returned when the normalized input is empty or not 17 characters long
var ErrInvalidLength = errors.New("invalid VIN: must be 17 characters")

var validate = validator.New()

// request is the validated shape of a decode request
type request struct {
	VIN string `validate:"required,len=17"`
}

// Normalize trims surrounding whitespace and upper-cases the input
func Normalize(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// Validate normalizes input and returns it when it is a well-formed VIN
func Validate(input string) (string, error) {
	v := Normalize(input)
	if err := validate.Struct(request{VIN: v}); err != nil {
		return "", ErrInvalidLength
	}
	return v, nil
}
