// Package expr implements the small formula language used by derived fields.
//
// Formulas are tokenized, parsed by a recursive-descent parser into a tree
// and evaluated by walking that tree. The language knows number, string and
// boolean literals, identifiers bound by the caller, arithmetic (+ - * /),
// comparisons (< <= > >= == !=) and boolean composition (&& || !). Nothing
// else is reachable from a formula.
package expr
