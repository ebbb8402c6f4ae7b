package validation

import "github.com/goliatone/go-formbuilder/pkg/model"

// ValidateValues validates every non-derived field of form against the live
// values keyed by field id. Fields without a value are validated as blank.
func ValidateValues(form model.Form, values map[int]any) map[int]Result {
	results := make(map[int]Result, len(form.Fields))
	for _, field := range form.Fields {
		if field.IsDerived() {
			continue
		}
		results[field.ID] = Validate(field, JoinValue(field, values[field.ID]))
	}
	return results
}

// AllValid reports whether every result passed.
func AllValid(results map[int]Result) bool {
	for _, result := range results {
		if !result.Valid {
			return false
		}
	}
	return true
}
