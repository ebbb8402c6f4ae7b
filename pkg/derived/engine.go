package derived

import (
	"fmt"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/hashicorp/go-hclog"
)

// Clock returns the current time. Age derivation measures against it.
type Clock func() time.Time

// Engine computes derived field values from the live values of their
// parents. An Engine holds no per-form state and is safe for concurrent use.
type Engine struct {
	clock  Clock
	logger hclog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for age derivation.
func WithClock(clock Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLogger routes evaluation diagnostics to logger.
func WithLogger(logger hclog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New constructs an Engine using the wall clock and a discarding logger
// unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:  time.Now,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Result is the outcome of computing one derived field. Value is always the
// text to display; Err carries the cause when Value is one of the Display*
// markers.
type Result struct {
	FieldID int
	Value   string
	Err     error
}

var defaultEngine = New()

// Compute evaluates field with the default engine.
func Compute(field model.Field, fields []model.Field, values map[int]any) string {
	return defaultEngine.Compute(field, fields, values)
}

// Compute returns the display value of a derived field. fields is the form's
// field list and values the live values keyed by field id.
func (e *Engine) Compute(field model.Field, fields []model.Field, values map[int]any) string {
	return e.Evaluate(field, fields, values).Value
}

// ComputeAll evaluates every derived field of form in form order. Each field
// is computed independently from the live values; derived parents are read
// as-is rather than recomputed first.
func (e *Engine) ComputeAll(form model.Form, values map[int]any) []Result {
	var results []Result
	for _, field := range form.Fields {
		if !field.IsDerived() {
			continue
		}
		results = append(results, e.Evaluate(field, form.Fields, values))
	}
	return results
}

// Evaluate computes field and reports the failure cause, if any.
func (e *Engine) Evaluate(field model.Field, fields []model.Field, values map[int]any) (result Result) {
	result.FieldID = field.ID
	defer func() {
		if r := recover(); r != nil {
			result.Value = DisplayError
			result.Err = &EvaluationError{FieldID: field.ID, Err: fmt.Errorf("panic: %v", r)}
			e.logger.Error("error calculating derived value", "field", field.ID, "panic", r)
		}
	}()

	if len(field.ParentFields) == 0 {
		return result
	}
	b, ok := resolveParents(field, fields, values)
	if !ok {
		return result
	}

	var (
		value string
		err   error
	)
	switch field.DerivedType {
	case model.DerivedTypeAge:
		value, err = e.age(b)
	case model.DerivedTypeFullName:
		value = fullName(b)
	case model.DerivedTypeCalculation:
		value, err = calculate(field.Formula, b)
	case model.DerivedTypeConditional:
		value, err = conditional(field.Formula, b)
	default:
		return result
	}

	result.Value = value
	if err == nil {
		return result
	}
	switch typed := err.(type) {
	case *InvalidFormulaError:
		typed.FieldID = field.ID
		result.Err = typed
		e.logger.Debug("derived formula rejected", "field", field.ID, "formula", typed.Expression, "reason", typed.Reason)
	default:
		result.Err = &EvaluationError{FieldID: field.ID, Err: err}
		e.logger.Warn("error calculating derived value", "field", field.ID, "type", string(field.DerivedType), "error", err)
	}
	return result
}
