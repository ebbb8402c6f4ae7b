package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrUnknownParent     = errors.New("parent field not found")
	ErrDerivedParent     = errors.New("parent field is derived")
	ErrSelfReference     = errors.New("field references itself")
	ErrCyclicDependency  = errors.New("cyclic dependency")
	ErrInvalidDerivation = errors.New("invalid derivation")
)

// GraphError reports a derivation graph violation for a single field.
type GraphError struct {
	FieldID int
	Kind    error
	Msg     string
}

func (e *GraphError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("field%d: %s", e.FieldID, e.Kind.Error())
	}
	return fmt.Sprintf("field%d: %s: %s", e.FieldID, e.Kind.Error(), e.Msg)
}

func (e *GraphError) Unwrap() error { return e.Kind }

func graphErrorf(fieldID int, kind error, format string, args ...any) error {
	return &GraphError{FieldID: fieldID, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ValidateDerivation checks the parents declared by field against form. The
// field itself may or may not already be part of form; when it is, the copy
// passed in wins so edits can be checked before they are applied.
func ValidateDerivation(form Form, field Field) error {
	if !field.IsDerived() {
		return nil
	}
	if field.DerivedType != "" && !field.DerivedType.Valid() {
		return graphErrorf(field.ID, ErrInvalidDerivation, "unknown derived type %q", field.DerivedType)
	}

	var result *multierror.Error
	seen := make(map[int]struct{}, len(field.ParentFields))
	for _, parentID := range field.ParentFields {
		if _, dup := seen[parentID]; dup {
			continue
		}
		seen[parentID] = struct{}{}

		if parentID == field.ID {
			result = multierror.Append(result, graphErrorf(field.ID, ErrSelfReference, "field%d", parentID))
			continue
		}
		parent, ok := form.Field(parentID)
		if !ok {
			result = multierror.Append(result, graphErrorf(field.ID, ErrUnknownParent, "field%d", parentID))
			continue
		}
		if parent.IsDerived() {
			result = multierror.Append(result, graphErrorf(field.ID, ErrDerivedParent, "field%d (%s)", parentID, parent.Label))
		}
	}

	candidate := withField(form, field)
	if path := findCycle(candidate, field.ID); len(path) > 0 {
		result = multierror.Append(result, graphErrorf(field.ID, ErrCyclicDependency, "%s", formatPath(path)))
	}
	return result.ErrorOrNil()
}

// ValidateGraph checks every derived field of form and aggregates all
// violations.
func ValidateGraph(form Form) error {
	var result *multierror.Error
	for _, field := range form.Fields {
		if err := ValidateDerivation(form, field); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func withField(form Form, field Field) Form {
	fields := make([]Field, 0, len(form.Fields)+1)
	replaced := false
	for _, existing := range form.Fields {
		if existing.ID == field.ID {
			fields = append(fields, field)
			replaced = true
			continue
		}
		fields = append(fields, existing)
	}
	if !replaced {
		fields = append(fields, field)
	}
	form.Fields = fields
	return form
}

// findCycle runs a depth-first walk over parent edges starting at start and
// returns one cycle passing through start, or nil. Parents are visited in
// declaration order so the witness path is deterministic.
func findCycle(form Form, start int) []int {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	parents := make(map[int][]int, len(form.Fields))
	for _, field := range form.Fields {
		parents[field.ID] = field.ParentFields
	}

	color := make(map[int]int, len(form.Fields))
	var stack []int
	var cycle []int

	var dfs func(id int) bool
	dfs = func(id int) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, next := range parents[id] {
			if _, ok := parents[next]; !ok || next == id {
				continue
			}
			switch color[next] {
			case white:
				if dfs(next) {
					return true
				}
			case gray:
				if next != start {
					continue
				}
				cycle = append(append([]int(nil), stack...), next)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	if dfs(start) {
		return cycle
	}
	return nil
}

func formatPath(path []int) string {
	parts := make([]string, 0, len(path))
	for _, id := range path {
		parts = append(parts, fmt.Sprintf("field%d", id))
	}
	return strings.Join(parts, " -> ")
}

// ValidateDependents checks that field can serve as a parent for the derived
// fields of form that reference it. It only fails when field is derived.
func ValidateDependents(form Form, field Field) error {
	if !field.IsDerived() {
		return nil
	}
	var result *multierror.Error
	for _, other := range form.Fields {
		if other.ID == field.ID || !other.IsDerived() {
			continue
		}
		for _, parentID := range other.ParentFields {
			if parentID == field.ID {
				result = multierror.Append(result, graphErrorf(other.ID, ErrDerivedParent, "field%d (%s)", field.ID, field.Label))
				break
			}
		}
	}
	return result.ErrorOrNil()
}
