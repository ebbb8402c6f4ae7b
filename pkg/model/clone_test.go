package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFormCloneIsDeep(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	form := Form{
		ID:        "abc",
		Name:      "Signup",
		CreatedAt: &created,
		Fields: []Field{
			NewField(FieldTypeCheckbox, 1),
			NewDerivedField(2, DerivedConfig{ParentFields: []int{1}}),
		},
	}
	form.Fields[0].Validation[ValidationRuleMinLength] = 2

	clone, err := form.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if diff := cmp.Diff(form, clone); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}

	clone.Fields[0].Options[0] = "mutated"
	clone.Fields[0].Validation[ValidationRuleMinLength] = 9
	clone.Fields[1].ParentFields[0] = 99
	*clone.CreatedAt = clone.CreatedAt.Add(time.Hour)

	if form.Fields[0].Options[0] != "Option 1" {
		t.Fatalf("options leaked into original")
	}
	if form.Fields[0].Validation[ValidationRuleMinLength] != 2 {
		t.Fatalf("validation leaked into original")
	}
	if form.Fields[1].ParentFields[0] != 1 {
		t.Fatalf("parents leaked into original")
	}
	if !form.CreatedAt.Equal(created) {
		t.Fatalf("timestamp leaked into original")
	}
}
