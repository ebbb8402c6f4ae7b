// Package model defines the form document: fields, their validation rules and
// derivation attributes, and the ordered form that holds them. The package is
// pure data plus the invariants that protect it; NewField builds palette
// entries with default labels and options, Clone produces deep copies for
// load/save boundaries, and ValidateGraph rejects derived fields whose parents
// are unknown, derived themselves, or part of a dependency cycle.
package model
