package derived

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/derived/expr"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	calculationWhitelist = regexp.MustCompile(`^[0-9+\-*/.() ]+$`)
	conditionalPattern   = regexp.MustCompile(`(?i)if\s*\(\s*(.+?)\s*\)\s*"([^"]*?)"\s*else\s*"([^"]*?)"`)
	leadingFloat         = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// DateLayouts lists the formats accepted for date parents, tried in order.
var DateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}

func (e *Engine) age(b *bindings) (string, error) {
	for _, parent := range b.parents {
		if parent.field.Type != model.FieldTypeDate {
			continue
		}
		now := e.clock()
		birth, err := parseDate(parent.value, now.Location())
		if err != nil {
			return DisplayError, err
		}
		return strconv.Itoa(yearsBetween(birth, now)), nil
	}
	return "", nil
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

// yearsBetween counts whole years from birth to now; the current year only
// counts once the birthday has been reached.
func yearsBetween(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

func fullName(b *bindings) string {
	parts := make([]string, 0, len(b.parents))
	for _, parent := range b.parents {
		if parent.value != "" {
			parts = append(parts, parent.value)
		}
	}
	return strings.Join(parts, " ")
}

func calculate(formula string, b *bindings) (string, error) {
	if formula == "" {
		return "", nil
	}
	substituted := b.substitute(formula, func(value string) string {
		return expr.FormatNumber(parseLeadingFloat(value))
	})
	if !calculationWhitelist.MatchString(substituted) {
		return DisplayInvalidFormula, &InvalidFormulaError{
			Expression: substituted,
			Reason:     "only numbers, arithmetic operators and parentheses are allowed",
		}
	}
	result, err := expr.Evaluate(substituted, nil)
	if err != nil {
		return DisplayError, err
	}
	if result.Kind != expr.KindNumber || !result.IsFinite() {
		return DisplayInvalid, nil
	}
	return expr.FormatNumber(result.Num), nil
}

// parseLeadingFloat reads the longest numeric prefix of value. Values without
// one count as zero.
func parseLeadingFloat(value string) float64 {
	match := leadingFloat.FindString(strings.TrimSpace(value))
	if match == "" {
		return 0
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return f
}

func conditional(formula string, b *bindings) (string, error) {
	if formula == "" {
		return "", nil
	}
	match := conditionalPattern.FindStringSubmatch(formula)
	if match == nil {
		return DisplayInvalidCondition, &InvalidFormulaError{
			Expression: formula,
			Reason:     `expected if (condition) "then" else "otherwise"`,
		}
	}
	condition, whenTrue, whenFalse := match[1], match[2], match[3]
	substituted := b.substitute(condition, func(value string) string {
		if n, ok := numericValue(value); ok {
			return expr.FormatNumber(n)
		}
		return quote(value)
	})
	result, err := expr.Evaluate(substituted, nil)
	if err != nil {
		return DisplayError, err
	}
	if result.Truthy() {
		return whenTrue, nil
	}
	return whenFalse, nil
}

func numericValue(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func quote(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
