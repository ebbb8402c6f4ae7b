package model

import "time"

// FieldType enumerates the palette of inputs a form can contain.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextArea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
	FieldTypeDerived  FieldType = "derived"
)

// FieldTypes lists every palette entry in display order.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeNumber,
	FieldTypeTextArea,
	FieldTypeSelect,
	FieldTypeRadio,
	FieldTypeCheckbox,
	FieldTypeDate,
	FieldTypeDerived,
}

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasOptions reports whether fields of this type carry a list of options.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// DerivedType selects the computation strategy of a derived field.
type DerivedType string

const (
	DerivedTypeAge         DerivedType = "age"
	DerivedTypeFullName    DerivedType = "fullName"
	DerivedTypeCalculation DerivedType = "calculation"
	DerivedTypeConditional DerivedType = "conditional"
)

// Valid reports whether d is one of the known derivation strategies.
func (d DerivedType) Valid() bool {
	switch d {
	case DerivedTypeAge, DerivedTypeFullName, DerivedTypeCalculation, DerivedTypeConditional:
		return true
	default:
		return false
	}
}

const (
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRuleEmail     = "email"
	ValidationRulePassword  = "password"
)

// ValidationRules maps a rule name to its parameter. Length rules carry an
// integer bound while format rules carry a boolean flag. Values decoded from
// JSON arrive as float64 and are accepted as bounds as long as they are
// integral.
type ValidationRules map[string]any

// Bound returns the integer parameter of a length rule. A missing, zero or
// non-integral parameter disables the rule.
func (r ValidationRules) Bound(rule string) (int, bool) {
	raw, ok := r[rule]
	if !ok {
		return 0, false
	}
	var n int
	switch v := raw.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		n = int(v)
	default:
		return 0, false
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}

// Enabled reports whether a flag rule is switched on. Numeric parameters are
// treated as enabled when non-zero.
func (r ValidationRules) Enabled(rule string) bool {
	raw, ok := r[rule]
	if !ok || raw == nil {
		return false
	}
	switch v := raw.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != "" && v != "false"
	default:
		return true
	}
}

// Field is one configurable input of a form.
type Field struct {
	ID           int             `json:"id" yaml:"id"`
	Type         FieldType       `json:"type" yaml:"type"`
	Label        string          `json:"label" yaml:"label"`
	Required     bool            `json:"required" yaml:"required"`
	DefaultValue any             `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Options      []string        `json:"options,omitempty" yaml:"options,omitempty"`
	Validation   ValidationRules `json:"validation,omitempty" yaml:"validation,omitempty"`
	DerivedType  DerivedType     `json:"derivedType,omitempty" yaml:"derivedType,omitempty"`
	Formula      string          `json:"formula,omitempty" yaml:"formula,omitempty"`
	ParentFields []int           `json:"parentFields,omitempty" yaml:"parentFields,omitempty"`
}

// IsDerived reports whether the field value is computed from other fields.
func (f Field) IsDerived() bool {
	return f.Type == FieldTypeDerived
}

// Form is an ordered collection of fields plus persistence metadata. ID and
// CreatedAt stay empty until the first successful save.
type Form struct {
	ID        string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string     `json:"name" yaml:"name"`
	Fields    []Field    `json:"fields" yaml:"fields"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Saved reports whether the form has been persisted at least once.
func (f Form) Saved() bool {
	return f.ID != ""
}

// Field returns the field with the given id.
func (f Form) Field(id int) (Field, bool) {
	if idx := f.FieldIndex(id); idx >= 0 {
		return f.Fields[idx], true
	}
	return Field{}, false
}

// FieldIndex returns the position of the field with the given id, or -1.
func (f Form) FieldIndex(id int) int {
	for idx, field := range f.Fields {
		if field.ID == id {
			return idx
		}
	}
	return -1
}

// MaxFieldID returns the largest field id in the form, or 0 when empty.
func (f Form) MaxFieldID() int {
	max := 0
	for _, field := range f.Fields {
		if field.ID > max {
			max = field.ID
		}
	}
	return max
}

// DerivedFields returns the derived fields in form order.
func (f Form) DerivedFields() []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.IsDerived() {
			out = append(out, field)
		}
	}
	return out
}
