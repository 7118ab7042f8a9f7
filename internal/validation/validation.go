// Package validation provides request validation collected as per-field
// messages, so handlers can return them all at once.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 72

	MinNameLength = 2
	MaxNameLength = 50

	CardNumberLength = 16

	MaxReasonLength      = 255
	MaxDescriptionLength = 500
)

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	cardNumberRegex = regexp.MustCompile(`^\d{16}$`)
)

// Validator collects validation errors keyed by field name.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

func (v *Validator) RequiredID(field string, value uint) {
	v.Check(value != 0, field, "must not be zero")
}

func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

func (v *Validator) MinLength(field, value string, n int) {
	v.Check(len(value) >= n, field, fmt.Sprintf("must be at least %d characters long", n))
}

func (v *Validator) MaxLength(field, value string, n int) {
	v.Check(len(value) <= n, field, fmt.Sprintf("must not be more than %d characters long", n))
}

// CardNumber validates a raw (unencrypted) card number.
func (v *Validator) CardNumber(field, number string) {
	v.Check(cardNumberRegex.MatchString(number), field, "must be exactly 16 digits")
}

// Future checks that a date is in the future.
func (v *Validator) Future(field string, t time.Time) {
	v.Check(t.After(time.Now()), field, "must be in the future")
}

// Amount validates a monetary amount: strictly positive, at most two decimal
// places.
func (v *Validator) Amount(field string, amount decimal.Decimal) {
	v.Check(amount.IsPositive(), field, "must be greater than zero")
	v.Check(amount.Exponent() >= -2, field, "must have at most two decimal places")
}

// NonNegativeAmount validates an optional balance: zero or more, at most two
// decimal places.
func (v *Validator) NonNegativeAmount(field string, amount decimal.Decimal) {
	v.Check(!amount.IsNegative(), field, "must not be negative")
	v.Check(amount.Exponent() >= -2, field, "must have at most two decimal places")
}

// Password validates password strength.
func (v *Validator) Password(field, password string) {
	v.MinLength(field, password, MinPasswordLength)
	v.MaxLength(field, password, MaxPasswordLength)

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}
	v.Check(hasLetter, field, "must contain at least one letter")
	v.Check(hasNumber, field, "must contain at least one number")
}
