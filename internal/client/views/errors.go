package views

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const minPasswordLen = 6

var (
	ErrNoDraft      = errors.New("nothing is being edited")
	ErrNotInList    = errors.New("no such item in the current list")
	ErrLoginFailed  = errors.New("login failed")
	ErrSignupFailed = errors.New("sign up failed")
)

// ValidationError is a form problem found before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// validateEmail wants exactly one '@' with something on both sides.
func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return invalid("email", "is required")
	}
	local, domain, _ := strings.Cut(email, "@")
	if strings.Count(email, "@") != 1 || local == "" || domain == "" {
		return invalid("email", "is not a valid address")
	}
	return nil
}

func validatePassword(field, pw string) error {
	if utf8.RuneCountInString(pw) < minPasswordLen {
		return invalid(field, fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	return nil
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid(field, "is required")
	}
	return nil
}
