// Package template defines the template rendering contract used by the
// summary renderer. The pongo subpackage provides the pongo2 implementation.
package template
