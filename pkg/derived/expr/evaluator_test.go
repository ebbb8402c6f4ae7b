package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvaluateArithmeticPrecedence(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"10 + 20 * 0.1":     12,
		"(10 + 20) * 0.5":   15,
		"100 / 4 - 5":       20,
		"-3 + 5":            2,
		"2 * -(1 + 1)":      -4,
		"1 - 2 - 3":         -4,
		"8 / 2 / 2":         2,
		".5 + 1.25":         1.75,
		"1e3 + 1":           1001,
		"((((7))))":         7,
		"3 * (2 + 4) / 9.0": 2,
	}
	for input, want := range cases {
		got, err := Evaluate(input, nil)
		if err != nil {
			t.Fatalf("Evaluate(%q) error: %v", input, err)
		}
		if got.Kind != KindNumber || got.Num != want {
			t.Fatalf("Evaluate(%q) = %+v, want %v", input, got, want)
		}
	}
}

func TestEvaluateDivisionByZeroIsNotFinite(t *testing.T) {
	t.Parallel()

	got, err := Evaluate("1 / 0", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsFinite() || !math.IsInf(got.Num, 1) {
		t.Fatalf("expected +Inf, got %+v", got)
	}

	got, err = Evaluate("0 / 0", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsFinite() {
		t.Fatalf("expected NaN, got %+v", got)
	}
}

func TestEvaluateComparisonsAndLogic(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		`50 > 100`:                      false,
		`150 > 100`:                     true,
		`3 >= 3 && 2 <= 1`:              false,
		`3 >= 3 || 2 <= 1`:              true,
		`!(1 == 2)`:                     true,
		`"Yes" == "Yes"`:                true,
		`"yes" === 'yes'`:               true,
		`"Yes" != "No"`:                 true,
		`"5" == 5`:                      true,
		`"abc" < "abd"`:                 true,
		`"abc" > 1`:                     false,
		`true == 1`:                     true,
		`1 + 1 == 2 && "a" + 1 == "a1"`: true,
	}
	for input, want := range cases {
		got, err := Evaluate(input, nil)
		if err != nil {
			t.Fatalf("Evaluate(%q) error: %v", input, err)
		}
		if got.Truthy() != want {
			t.Fatalf("Evaluate(%q) = %+v, want %v", input, got, want)
		}
	}
}

func TestEvaluateIdentifiers(t *testing.T) {
	t.Parallel()

	env := map[string]Value{
		"field1":    Number(10),
		"FirstName": String("Ada"),
	}
	got, err := Evaluate(`field1 * 2 > 15 && FirstName == "Ada"`, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Truthy() {
		t.Fatalf("expected true, got %+v", got)
	}

	_, err = Evaluate(`missing > 1`, env)
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Fatalf("expected ErrUnknownIdentifier, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"10 +",
		"(1 + 2",
		"1 = 2",
		"a & b",
		"a | b",
		`"unterminated`,
		"1 2",
		"1 % 2",
		"()",
	} {
		if _, err := Parse(input); !errors.Is(err, ErrSyntax) {
			t.Fatalf("Parse(%q) = %v, want ErrSyntax", input, err)
		}
	}

	if _, err := Parse("   "); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestProgramIdentifiers(t *testing.T) {
	t.Parallel()

	program, err := Parse(`a + b * a > c || !d`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, program.Identifiers()); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	t.Parallel()

	got, err := Evaluate(`"say \"hi\"" == 'say "hi"'`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Truthy() {
		t.Fatalf("expected escaped strings to match")
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		12:          "12",
		2.5:         "2.5",
		-4:          "-4",
		0.25:        "0.25",
		1e21:        "1e+21",
		math.Inf(1): "Infinity",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
