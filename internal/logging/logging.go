// Package logging builds the hclog logger shared by CLI commands.
package logging

import (
	"io"
	"os"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "formbuilder"

// New returns a logger configured from cfg writing to out. A nil writer
// falls back to stderr.
func New(cfg config.Config, out io.Writer) hclog.Logger {
	if out == nil {
		out = os.Stderr
	}
	level := hclog.LevelFromString(cfg.LogLevel)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       Name,
		Level:      level,
		Output:     out,
		JSONFormat: cfg.LogFormat == config.LogFormatJSON,
	})
}
