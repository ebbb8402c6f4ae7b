package expr

import "errors"

var (
	// ErrSyntax reports a formula that does not fit the grammar.
	ErrSyntax = errors.New("derived/expr: syntax error")
	// ErrUnknownIdentifier reports a name with no binding in the environment.
	ErrUnknownIdentifier = errors.New("derived/expr: unknown identifier")
	// ErrEmpty reports an expression with no tokens.
	ErrEmpty = errors.New("derived/expr: empty expression")
)
