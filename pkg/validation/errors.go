package validation

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every rule failure produced by Validate.
var ErrValidation = errors.New("validation failed")

const (
	MessageRequired = "This field is required"
	MessageEmail    = "Please enter a valid email address"
	MessagePassword = "Password must be at least 8 characters and contain a number"
)

// RequiredError reports a required field left empty.
type RequiredError struct{}

func (e *RequiredError) Error() string { return MessageRequired }

func (e *RequiredError) Unwrap() error { return ErrValidation }

// LengthBoundError reports a value shorter than minLength or longer than
// maxLength.
type LengthBoundError struct {
	Rule  string
	Bound int
}

func (e *LengthBoundError) Error() string {
	if e.Rule == RuleMaxLength {
		return fmt.Sprintf("Maximum %d characters allowed", e.Bound)
	}
	return fmt.Sprintf("Minimum %d characters required", e.Bound)
}

func (e *LengthBoundError) Unwrap() error { return ErrValidation }

// FormatError reports a value that does not match the email or password
// format.
type FormatError struct {
	Rule string
}

func (e *FormatError) Error() string {
	if e.Rule == RulePassword {
		return MessagePassword
	}
	return MessageEmail
}

func (e *FormatError) Unwrap() error { return ErrValidation }
