package derived

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

type parentValue struct {
	field model.Field
	value string
}

type binding struct {
	key   string
	value string
}

// bindings holds the resolved parents of a derived field and the names a
// formula may use to reference them.
type bindings struct {
	parents []parentValue
	entries []binding
	index   map[string]int
}

// FieldKey is the stable formula name of a field, e.g. "field3".
func FieldKey(id int) string {
	return fmt.Sprintf("field%d", id)
}

// LabelKey is the label-based formula name of a field: the label with all
// whitespace removed.
func LabelKey(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, label)
}

// resolveParents looks up every declared parent. It reports false when a
// parent is unknown or its value is blank, in which case the derived field
// shows nothing.
func resolveParents(field model.Field, fields []model.Field, values map[int]any) (*bindings, bool) {
	b := &bindings{index: make(map[string]int, len(field.ParentFields)*2)}
	for _, parentID := range field.ParentFields {
		parent, ok := findField(fields, parentID)
		if !ok {
			return nil, false
		}
		value := validation.JoinValue(parent, values[parentID])
		if strings.TrimSpace(value) == "" {
			return nil, false
		}
		b.parents = append(b.parents, parentValue{field: parent, value: value})
		b.set(FieldKey(parentID), value)
		if label := LabelKey(parent.Label); label != "" {
			b.set(label, value)
		}
	}
	return b, true
}

// set adds or overwrites a binding; an overwritten key keeps its original
// position.
func (b *bindings) set(key, value string) {
	if idx, ok := b.index[key]; ok {
		b.entries[idx].value = value
		return
	}
	b.index[key] = len(b.entries)
	b.entries = append(b.entries, binding{key: key, value: value})
}

func (b *bindings) lookup(key string) (string, bool) {
	idx, ok := b.index[key]
	if !ok {
		return "", false
	}
	return b.entries[idx].value, true
}

// substitute replaces whole-word occurrences of binding keys in src with the
// text produced by render. Longer keys win over their prefixes and quoted
// literals already present in src are copied through untouched.
func (b *bindings) substitute(src string, render func(string) string) string {
	keys := make([]string, 0, len(b.entries))
	for _, entry := range b.entries {
		keys = append(keys, entry.key)
	}
	sortByLengthDesc(keys)

	var out strings.Builder
	i := 0
	for i < len(src) {
		ch := src[i]
		if ch == '"' || ch == '\'' {
			end := skipQuoted(src, i)
			out.WriteString(src[i:end])
			i = end
			continue
		}
		if i == 0 || !isWordByte(src[i-1]) {
			if key, ok := matchKey(src, i, keys); ok {
				value, _ := b.lookup(key)
				out.WriteString(render(value))
				i += len(key)
				continue
			}
		}
		out.WriteByte(ch)
		i++
	}
	return out.String()
}

func matchKey(src string, at int, keys []string) (string, bool) {
	for _, key := range keys {
		if !strings.HasPrefix(src[at:], key) {
			continue
		}
		end := at + len(key)
		if end < len(src) && isWordByte(src[end]) && isWordByte(key[len(key)-1]) {
			continue
		}
		return key, true
	}
	return "", false
}

func skipQuoted(src string, start int) int {
	quote := src[start]
	i := start + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return len(src)
}

func sortByLengthDesc(keys []string) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && len(keys[j]) > len(keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func findField(fields []model.Field, id int) (model.Field, bool) {
	for _, field := range fields {
		if field.ID == id {
			return field, true
		}
	}
	return model.Field{}, false
}
