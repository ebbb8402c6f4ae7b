package model

// DefaultOptions are assigned to option-bearing fields that were not
// configured explicitly.
var DefaultOptions = []string{"Option 1", "Option 2"}

// NewField constructs a field of type t with the supplied id. The caller owns
// id allocation and appending the field to a form.
func NewField(t FieldType, id int) Field {
	field := Field{
		ID:           id,
		Type:         t,
		Label:        DefaultLabel(t, id),
		DefaultValue: "",
		Validation:   ValidationRules{},
	}
	if t.HasOptions() {
		field.Options = append([]string(nil), DefaultOptions...)
	}
	return field
}

// DerivedConfig describes the derivation-specific attributes of a new
// derived field.
type DerivedConfig struct {
	Label        string
	DerivedType  DerivedType
	Formula      string
	ParentFields []int
	Required     bool
}

// NewDerivedField constructs a derived field from cfg. An empty label falls
// back to the default "Derived Field <id>" label and an empty derivation type
// defaults to age.
func NewDerivedField(id int, cfg DerivedConfig) Field {
	field := NewField(FieldTypeDerived, id)
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	field.Required = cfg.Required
	field.DerivedType = cfg.DerivedType
	if field.DerivedType == "" {
		field.DerivedType = DerivedTypeAge
	}
	field.Formula = cfg.Formula
	field.ParentFields = append([]int(nil), cfg.ParentFields...)
	return field
}
