package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	RuleMinLength = model.ValidationRuleMinLength
	RuleMaxLength = model.ValidationRuleMaxLength
	RuleEmail     = model.ValidationRuleEmail
	RulePassword  = model.ValidationRulePassword
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of validating one value. Message carries the text of
// the first failing rule and is empty when Valid is true.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Err     error  `json:"-"`
}

func pass() Result {
	return Result{Valid: true}
}

func fail(err error) Result {
	return Result{Valid: false, Message: err.Error(), Err: err}
}

// Validate checks raw against the rules of field. Required is checked first
// and short-circuits; the remaining rules only run on non-blank values, in
// the fixed order minLength, maxLength, email, password. The first failure
// wins.
func Validate(field model.Field, raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if field.Required && trimmed == "" {
		return fail(&RequiredError{})
	}
	if trimmed == "" || len(field.Validation) == 0 {
		return pass()
	}

	rules := field.Validation
	length := utf8.RuneCountInString(raw)

	if bound, ok := rules.Bound(RuleMinLength); ok && length < bound {
		return fail(&LengthBoundError{Rule: RuleMinLength, Bound: bound})
	}
	if bound, ok := rules.Bound(RuleMaxLength); ok && length > bound {
		return fail(&LengthBoundError{Rule: RuleMaxLength, Bound: bound})
	}
	if rules.Enabled(RuleEmail) && !IsEmail(raw) {
		return fail(&FormatError{Rule: RuleEmail})
	}
	if rules.Enabled(RulePassword) && !IsPassword(raw) {
		return fail(&FormatError{Rule: RulePassword})
	}
	return pass()
}

// IsEmail reports whether value has a local@domain.tld shape.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsPassword reports whether value is at least eight characters long and
// contains a digit.
func IsPassword(value string) bool {
	if utf8.RuneCountInString(value) < 8 {
		return false
	}
	return strings.IndexFunc(value, isASCIIDigit) >= 0
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
