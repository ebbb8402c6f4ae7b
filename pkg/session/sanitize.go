package session

import (
	"html"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from user-entered labels and options. Entities
// escaped by the policy are decoded again so the stored text stays plain.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func sanitizeField(field model.Field) model.Field {
	field.Label = sanitizeText(field.Label)
	if field.Label == "" {
		field.Label = model.DefaultLabel(field.Type, field.ID)
	}
	if len(field.Options) > 0 {
		options := make([]string, 0, len(field.Options))
		for _, option := range field.Options {
			if cleaned := sanitizeText(option); cleaned != "" {
				options = append(options, cleaned)
			}
		}
		field.Options = options
	}
	return field
}
