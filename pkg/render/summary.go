package render

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/render/template/pongo"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// SummaryTitle heads every submission summary.
const SummaryTitle = "Form Submitted Successfully!"

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// SummaryLine is one "label: value" row of a summary.
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SummaryRenderer formats accepted submissions as plain text.
type SummaryRenderer struct {
	engine template.TemplateRenderer
	name   string
}

// SummaryOption configures a SummaryRenderer.
type SummaryOption func(*SummaryRenderer)

// WithTemplateRenderer swaps the template engine.
func WithTemplateRenderer(engine template.TemplateRenderer) SummaryOption {
	return func(r *SummaryRenderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTemplateName selects the template used to render the summary.
func WithTemplateName(name string) SummaryOption {
	return func(r *SummaryRenderer) {
		if strings.TrimSpace(name) != "" {
			r.name = name
		}
	}
}

// NewSummaryRenderer builds a renderer backed by the embedded summary
// template unless overridden.
func NewSummaryRenderer(opts ...SummaryOption) (*SummaryRenderer, error) {
	r := &SummaryRenderer{name: "summary"}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		files, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("render: templates: %w", err)
		}
		engine, err := pongo.New(pongo.WithFS(files))
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}
	return r, nil
}

// Render writes the summary of submission to out, if given, and returns it.
func (r *SummaryRenderer) Render(submission session.Submission, out ...io.Writer) (string, error) {
	data := map[string]any{
		"title":   SummaryTitle,
		"entries": SummaryLines(submission),
	}
	rendered, err := r.engine.Render(r.name, data, out...)
	if err != nil {
		return "", fmt.Errorf("render: summary: %w", err)
	}
	return rendered, nil
}

// SummaryLines flattens submission entries in form order. Multi-value
// entries are joined with ", ".
func SummaryLines(submission session.Submission) []SummaryLine {
	lines := make([]SummaryLine, 0, len(submission.Entries))
	for _, entry := range submission.Entries {
		lines = append(lines, SummaryLine{Label: entry.Label, Value: summaryValue(entry.Value)})
	}
	return lines
}

func summaryValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, validation.CheckboxSeparator)
	default:
		return fmt.Sprint(v)
	}
}

var (
	defaultSummaryOnce sync.Once
	defaultSummary     *SummaryRenderer
	defaultSummaryErr  error
)

// Summary renders submission with the embedded template.
func Summary(submission session.Submission) (string, error) {
	defaultSummaryOnce.Do(func() {
		defaultSummary, defaultSummaryErr = NewSummaryRenderer()
	})
	if defaultSummaryErr != nil {
		return "", defaultSummaryErr
	}
	return defaultSummary.Render(submission)
}
