package template

import (
	"io"
)

// TemplateRenderer is the seam text renderers depend on. Render resolves a
// named template while RenderString parses the supplied content directly.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
