package model

import "fmt"

var typeLabels = map[FieldType]string{
	FieldTypeText:     "Text Input",
	FieldTypeNumber:   "Number Input",
	FieldTypeTextArea: "Text Area",
	FieldTypeSelect:   "Select Dropdown",
	FieldTypeRadio:    "Radio Buttons",
	FieldTypeCheckbox: "Checkboxes",
	FieldTypeDate:     "Date Picker",
	FieldTypeDerived:  "Derived Field",
}

// TypeLabel returns the palette label for a field type. Unknown types fall
// back to "Field".
func TypeLabel(t FieldType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return "Field"
}

// DefaultLabel builds the label assigned to a freshly created field.
func DefaultLabel(t FieldType, id int) string {
	return fmt.Sprintf("%s %d", TypeLabel(t), id)
}

// RuleLabel renders a short badge for a validation rule, e.g. "Min: 3".
func RuleLabel(rule string, param any) string {
	switch rule {
	case ValidationRuleMinLength:
		return fmt.Sprintf("Min: %v", param)
	case ValidationRuleMaxLength:
		return fmt.Sprintf("Max: %v", param)
	case ValidationRuleEmail:
		return "Email"
	case ValidationRulePassword:
		return "Password"
	default:
		return rule
	}
}
