package session

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// AddField appends a new field of type t with the next id.
func (s *Session) AddField(t model.FieldType) (model.Field, error) {
	if !t.Valid() {
		return model.Field{}, fmt.Errorf("%w: %q", ErrUnknownFieldType, t)
	}
	s.counter++
	field := model.NewField(t, s.counter)
	s.form.Fields = append(s.form.Fields, field)
	if !field.IsDerived() {
		s.values[field.ID] = field.DefaultValue
	}
	s.notifier.Notify(LevelSuccess, MessageFieldAdded)
	return field, nil
}

// AddDerivedField appends a derived field configured by cfg. The derivation
// graph is checked before the field is added; on failure the id counter is
// left untouched.
func (s *Session) AddDerivedField(cfg model.DerivedConfig) (model.Field, error) {
	field := sanitizeField(model.NewDerivedField(s.counter+1, cfg))
	if err := model.ValidateDerivation(s.form, field); err != nil {
		s.notifier.Notify(LevelError, err.Error())
		return model.Field{}, err
	}
	s.counter = field.ID
	s.form.Fields = append(s.form.Fields, field)
	s.notifier.Notify(LevelSuccess, MessageFieldAdded)
	return field, nil
}

// UpdateField replaces the field with the same id. Labels and options are
// sanitized and derived configurations are checked against the graph.
func (s *Session) UpdateField(field model.Field) (model.Field, error) {
	idx := s.form.FieldIndex(field.ID)
	if idx < 0 {
		return model.Field{}, fmt.Errorf("%w: field%d", ErrUnknownField, field.ID)
	}
	updated, err := field.Clone()
	if err != nil {
		return model.Field{}, err
	}
	updated = sanitizeField(updated)
	if !updated.Type.HasOptions() {
		updated.Options = nil
	}
	if !updated.IsDerived() {
		updated.DerivedType = ""
		updated.Formula = ""
		updated.ParentFields = nil
	}
	if err := model.ValidateDerivation(s.form, updated); err != nil {
		s.notifier.Notify(LevelError, err.Error())
		return model.Field{}, err
	}
	if err := model.ValidateDependents(s.form, updated); err != nil {
		s.notifier.Notify(LevelError, err.Error())
		return model.Field{}, err
	}

	s.form.Fields[idx] = updated
	if updated.IsDerived() {
		delete(s.values, updated.ID)
	} else if _, ok := s.values[updated.ID]; !ok {
		s.values[updated.ID] = updated.DefaultValue
	}
	s.notifier.Notify(LevelSuccess, MessageFieldUpdated)
	return updated, nil
}

// DeleteField removes a field and its live value. Ids are never reused, so
// the counter is left as is. Derived fields that referenced the removed field
// compute to an empty value until reconfigured.
func (s *Session) DeleteField(id int) error {
	idx := s.form.FieldIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: field%d", ErrUnknownField, id)
	}
	s.form.Fields = append(s.form.Fields[:idx], s.form.Fields[idx+1:]...)
	delete(s.values, id)
	s.notifier.Notify(LevelSuccess, MessageFieldDeleted)
	return nil
}

// ReorderFields arranges fields in the order of ids. Unknown ids are ignored
// and fields missing from ids keep their relative order after the listed
// ones.
func (s *Session) ReorderFields(ids []int) {
	ordered := make([]model.Field, 0, len(s.form.Fields))
	placed := make(map[int]bool, len(ids))
	for _, id := range ids {
		if placed[id] {
			continue
		}
		if field, ok := s.form.Field(id); ok {
			ordered = append(ordered, field)
			placed[id] = true
		}
	}
	for _, field := range s.form.Fields {
		if !placed[field.ID] {
			ordered = append(ordered, field)
		}
	}
	s.form.Fields = ordered
}
