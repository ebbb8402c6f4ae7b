package expr

import (
	"math"
	"strconv"
	"strings"
)

// Kind classifies a runtime value.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
)

// Value is the result of evaluating an expression. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Bool bool
}

// Number wraps a float64.
func Number(v float64) Value { return Value{Kind: KindNumber, Num: v} }

// String wraps a string.
func String(v string) Value { return Value{Kind: KindString, Str: v} }

// Bool wraps a bool.
func Bool(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// Truthy follows the usual scripting rules: false, 0, NaN and "" are false,
// everything else is true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	default:
		return v.Str != ""
	}
}

// Float coerces the value to a number. Strings that are blank coerce to 0,
// strings that are not numeric coerce to NaN.
func (v Value) Float() float64 {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	default:
		trimmed := strings.TrimSpace(v.Str)
		if trimmed == "" {
			return 0
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
}

// IsFinite reports whether the value is a finite number.
func (v Value) IsFinite() bool {
	return v.Kind == KindNumber && !math.IsNaN(v.Num) && !math.IsInf(v.Num, 0)
}

// String renders the value the way it is displayed in a derived field.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return FormatNumber(v.Num)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// FormatNumber renders f using the shortest representation that round-trips,
// without exponent notation for everyday magnitudes.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
