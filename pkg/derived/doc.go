// Package derived computes the values of derived form fields from the live
// values of their parent fields.
//
// Four strategies are supported: age (whole years since a date parent),
// fullName (space-joined parent values), calculation (arithmetic over
// numeric parent values) and conditional (if (condition) "a" else "b").
// Formulas reference parents as field<id> or by their label with whitespace
// removed, and are evaluated by the expr package rather than a host
// interpreter. Failures surface as the display markers "Error", "Invalid",
// "Invalid formula" and "Invalid condition".
package derived
