package service

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	minPasswordLength = 8
	passwordSymbols   = "-#!$@£%^&*()_+|~=`{}[]:\";'<>?,./\\ "
)

var personNamePattern = regexp.MustCompile(`^[a-zA-Z]+(?: [a-zA-Z]+)*$`)

// credentialRules validates registration fields. Rules are applied one at a
// time by the auth service because their order decides which error wins.
var credentialRules = newCredentialValidator()

func newCredentialValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails on programmer error (duplicate tag).
	if err := v.RegisterValidation("strong_password", strongPassword); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("person_name", personName); err != nil {
		panic(err)
	}
	return v
}

func isEmail(s string) bool {
	return credentialRules.Var(s, "required,email") == nil
}

func isStrongPassword(s string) bool {
	return credentialRules.Var(s, "strong_password") == nil
}

func isPersonName(s string) bool {
	return credentialRules.Var(s, "person_name") == nil
}

// strongPassword requires at least 8 characters with one lowercase letter,
// one uppercase letter, one digit and one symbol.
func strongPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len([]rune(pw)) < minPasswordLength {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// personName accepts letter groups separated by single spaces.
func personName(fl validator.FieldLevel) bool {
	return personNamePattern.MatchString(fl.Field().String())
}
