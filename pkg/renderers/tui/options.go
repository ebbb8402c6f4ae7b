package tui

import "io"

// Theme captures optional prefixes the filler applies when printing
// messages.
type Theme struct {
	TitlePrefix   string
	DerivedPrefix string
	ErrorPrefix   string
}

// DefaultTheme is applied when no theme is configured.
var DefaultTheme = Theme{
	TitlePrefix:   "== ",
	DerivedPrefix: "  = ",
	ErrorPrefix:   "  ! ",
}

// Option configures the Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver used by the filler.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithOutput directs the default survey driver's messages to out.
func WithOutput(out io.Writer) Option {
	return func(f *Filler) {
		f.out = out
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Filler) {
		f.theme = theme
	}
}

// WithConfirmSubmit asks for confirmation before submitting the answers.
func WithConfirmSubmit(enabled bool) Option {
	return func(f *Filler) {
		f.confirmSubmit = enabled
	}
}
