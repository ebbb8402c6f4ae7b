package derived

import (
	"errors"
	"fmt"
)

// Display values surfaced in place of a computed value.
const (
	DisplayError            = "Error"
	DisplayInvalid          = "Invalid"
	DisplayInvalidFormula   = "Invalid formula"
	DisplayInvalidCondition = "Invalid condition"
)

var (
	// ErrInvalidFormula is matched by InvalidFormulaError.
	ErrInvalidFormula = errors.New("derived: invalid formula")
	// ErrEvaluation is matched by EvaluationError.
	ErrEvaluation = errors.New("derived: evaluation failed")
)

// InvalidFormulaError reports a formula rejected before evaluation, either by
// the calculation character whitelist or by the conditional grammar.
type InvalidFormulaError struct {
	FieldID    int
	Expression string
	Reason     string
}

func (e *InvalidFormulaError) Error() string {
	return fmt.Sprintf("derived: field%d: invalid formula %q: %s", e.FieldID, e.Expression, e.Reason)
}

func (e *InvalidFormulaError) Unwrap() error { return ErrInvalidFormula }

// EvaluationError wraps a failure raised while computing a derived value.
type EvaluationError struct {
	FieldID int
	Err     error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("derived: field%d: %v", e.FieldID, e.Err)
}

func (e *EvaluationError) Is(target error) bool { return target == ErrEvaluation }

func (e *EvaluationError) Unwrap() error { return e.Err }
