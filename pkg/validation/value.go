package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// CheckboxSeparator joins the checked options of a checkbox field.
const CheckboxSeparator = ", "

// JoinValue flattens a live field value into the string the validation and
// derivation rules operate on. Checkbox selections are joined with ", ",
// radio fields yield their single checked option, and scalar values are
// formatted without trailing zeros.
func JoinValue(field model.Field, value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []string:
		return joinSelection(field, typed)
	case []any:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			if item == nil {
				continue
			}
			items = append(items, scalarString(item))
		}
		return joinSelection(field, items)
	default:
		return scalarString(typed)
	}
}

func joinSelection(field model.Field, items []string) string {
	if len(items) == 0 {
		return ""
	}
	if field.Type == model.FieldTypeRadio {
		return items[0]
	}
	return strings.Join(items, CheckboxSeparator)
}

func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
		return "true"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// Selection splits a checkbox value back into its options. Non-checkbox
// values are returned as a single-element slice unless blank.
func Selection(field model.Field, value any) []string {
	switch typed := value.(type) {
	case []string:
		return append([]string(nil), typed...)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if item != nil {
				out = append(out, scalarString(item))
			}
		}
		return out
	}
	joined := JoinValue(field, value)
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	if field.Type == model.FieldTypeCheckbox {
		return strings.Split(joined, CheckboxSeparator)
	}
	return []string{joined}
}
