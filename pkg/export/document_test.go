package export_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/export"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sampleForm() model.Form {
	email := model.NewField(model.FieldTypeText, 1)
	email.Label = "Email"
	email.Required = true
	email.Validation = model.ValidationRules{
		model.ValidationRuleEmail:     true,
		model.ValidationRuleMaxLength: 40,
	}
	colors := model.NewField(model.FieldTypeCheckbox, 2)
	colors.Label = "Colors"
	colors.Options = []string{"Red", "Blue"}
	born := model.NewField(model.FieldTypeDate, 3)
	born.Label = "Born"
	age := model.NewDerivedField(4, model.DerivedConfig{
		Label:        "Age",
		DerivedType:  model.DerivedTypeAge,
		ParentFields: []int{3},
	})
	return model.Form{Name: "Signup", Fields: []model.Field{email, colors, born, age}}
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	form := sampleForm()
	data, err := export.MarshalYAML(form)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	if !strings.Contains(string(data), "derivedType: age") {
		t.Fatalf("expected derived type in output:\n%s", data)
	}

	decoded, err := export.UnmarshalYAML(data)
	if err != nil {
		t.Fatalf("UnmarshalYAML: %v", err)
	}
	opts := cmp.Options{
		cmpopts.EquateEmpty(),
		cmpopts.IgnoreFields(model.Field{}, "DefaultValue"),
	}
	if diff := cmp.Diff(form, decoded, opts); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if bound, ok := decoded.Fields[0].Validation.Bound(model.ValidationRuleMaxLength); !ok || bound != 40 {
		t.Fatalf("expected maxLength 40, got %d (%v)", bound, ok)
	}
}

func TestUnmarshalYAMLAcceptsJSON(t *testing.T) {
	t.Parallel()

	data, err := export.MarshalJSON(sampleForm())
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	decoded, err := export.UnmarshalYAML(data)
	if err != nil {
		t.Fatalf("UnmarshalYAML: %v", err)
	}
	if decoded.Name != "Signup" || len(decoded.Fields) != 4 {
		t.Fatalf("unexpected form %+v", decoded)
	}
}

func TestUnmarshalYAMLRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"malformed":     "name: [",
		"unknown type":  "name: x\nfields:\n  - id: 1\n    type: slider\n",
		"duplicate id":  "name: x\nfields:\n  - id: 1\n    type: text\n  - id: 1\n    type: text\n",
		"missing id":    "name: x\nfields:\n  - type: text\n",
		"derived chain": "name: x\nfields:\n  - id: 1\n    type: derived\n    parentFields: [2]\n  - id: 2\n    type: derived\n    parentFields: [1]\n",
	}
	for name, doc := range tests {
		doc := doc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := export.UnmarshalYAML([]byte(doc))
			if !errors.Is(err, export.ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}

	_, err := export.UnmarshalYAML([]byte(tests["derived chain"]))
	if !errors.Is(err, model.ErrDerivedParent) {
		t.Fatalf("expected graph error to be preserved, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]export.Format{"JSON": export.FormatJSON, "yml": export.FormatYAML, "openapi": export.FormatOpenAPI} {
		got, err := export.ParseFormat(raw)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := export.ParseFormat("xml"); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	for _, format := range export.Formats {
		var buf bytes.Buffer
		if err := export.Encode(&buf, sampleForm(), format); err != nil {
			t.Fatalf("Encode(%s): %v", format, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("Encode(%s) wrote nothing", format)
		}
	}
	if err := export.Encode(&bytes.Buffer{}, sampleForm(), export.Format("csv")); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
