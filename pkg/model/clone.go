package model

import (
	"fmt"

	"github.com/mitchellh/copystructure"
)

// Clone returns a deep copy of the form. Mutating the copy never affects the
// receiver, which is what load/save boundaries rely on.
func (f Form) Clone() (Form, error) {
	out, err := copystructure.Copy(f)
	if err != nil {
		return Form{}, fmt.Errorf("model: clone form: %w", err)
	}
	return out.(Form), nil
}

// Clone returns a deep copy of the field.
func (f Field) Clone() (Field, error) {
	out, err := copystructure.Copy(f)
	if err != nil {
		return Field{}, fmt.Errorf("model: clone field %d: %w", f.ID, err)
	}
	return out.(Field), nil
}

// CloneForms deep copies a slice of forms.
func CloneForms(forms []Form) ([]Form, error) {
	if forms == nil {
		return nil, nil
	}
	out := make([]Form, 0, len(forms))
	for _, form := range forms {
		clone, err := form.Clone()
		if err != nil {
			return nil, err
		}
		out = append(out, clone)
	}
	return out, nil
}
