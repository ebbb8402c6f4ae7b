package session

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/derived"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Update is the outcome of a single value change in the preview: the
// validation result of the edited field and the recomputed derived values.
type Update struct {
	FieldID    int
	Validation validation.Result
	Derived    []derived.Result
}

// Entry is one label/value pair of a submission, in form order.
type Entry struct {
	FieldID int
	Label   string
	Value   any
}

// Submission is the outcome of submitting the preview.
type Submission struct {
	Valid   bool
	Results map[int]validation.Result
	Entries []Entry
}

// Data maps field labels to submitted values. Checkbox values are []string,
// everything else is a string. Duplicate labels keep the later field.
func (s Submission) Data() map[string]any {
	data := make(map[string]any, len(s.Entries))
	for _, entry := range s.Entries {
		data[entry.Label] = entry.Value
	}
	return data
}

// Value returns the live value of a field.
func (s *Session) Value(id int) any {
	return s.values[id]
}

// Values returns a copy of the live values keyed by field id.
func (s *Session) Values() map[int]any {
	out := make(map[int]any, len(s.values))
	for id, value := range s.values {
		out[id] = value
	}
	return out
}

// SetValue records a new live value for a field, validates it and
// recomputes every derived field.
func (s *Session) SetValue(id int, value any) (Update, error) {
	field, ok := s.form.Field(id)
	if !ok {
		return Update{}, fmt.Errorf("%w: field%d", ErrUnknownField, id)
	}
	if field.IsDerived() {
		return Update{}, fmt.Errorf("%w: field%d", ErrReadOnlyField, id)
	}
	s.values[id] = value
	return Update{
		FieldID:    id,
		Validation: validation.Validate(field, validation.JoinValue(field, value)),
		Derived:    s.engine.ComputeAll(s.form, s.values),
	}, nil
}

// Validate checks the current live value of a field.
func (s *Session) Validate(id int) (validation.Result, error) {
	field, ok := s.form.Field(id)
	if !ok {
		return validation.Result{}, fmt.Errorf("%w: field%d", ErrUnknownField, id)
	}
	return validation.Validate(field, validation.JoinValue(field, s.values[id])), nil
}

// Derived recomputes every derived field from the live values.
func (s *Session) Derived() []derived.Result {
	return s.engine.ComputeAll(s.form, s.values)
}

// ResetPreview restores every field to its default value and recomputes the
// derived fields.
func (s *Session) ResetPreview() []derived.Result {
	s.values = defaultValues(s.form)
	return s.Derived()
}

// Submit validates every input field and collects the submitted data. The
// notifier is told whether the submission was accepted.
func (s *Session) Submit() Submission {
	results := validation.ValidateValues(s.form, s.values)
	computed := make(map[int]string)
	for _, result := range s.Derived() {
		computed[result.FieldID] = result.Value
	}

	entries := make([]Entry, 0, len(s.form.Fields))
	for _, field := range s.form.Fields {
		entries = append(entries, Entry{
			FieldID: field.ID,
			Label:   field.Label,
			Value:   submittedValue(field, s.values[field.ID], computed),
		})
	}

	submission := Submission{
		Valid:   validation.AllValid(results),
		Results: results,
		Entries: entries,
	}
	if submission.Valid {
		s.notifier.Notify(LevelSuccess, MessageSubmitted)
		s.logger.Info("form submitted", "form", s.form.ID, "fields", len(entries))
	} else {
		s.notifier.Notify(LevelError, MessageSubmitRejected)
	}
	return submission
}

func submittedValue(field model.Field, value any, computed map[int]string) any {
	switch {
	case field.IsDerived():
		return computed[field.ID]
	case field.Type == model.FieldTypeCheckbox:
		selection := validation.Selection(field, value)
		if selection == nil {
			selection = []string{}
		}
		return selection
	default:
		return validation.JoinValue(field, value)
	}
}
