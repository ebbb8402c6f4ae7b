// Package validation evaluates the advisory, client-side rules attached to a
// field. Validate is a pure function of the field and its current raw value
// and reports only the first failing rule.
package validation
