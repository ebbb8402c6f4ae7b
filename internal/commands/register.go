// Package commands contains all CLI command definitions.
package commands

import (
	"os"

	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// environment carries the OS dependencies commands read from.
type environment struct {
	fs     afero.Fs
	getenv func(string) string
	driver tui.PromptDriver
}

// Option customises the command tree, mainly for tests.
type Option func(*environment)

// WithFs sets the filesystem used for config files, imports and the store.
func WithFs(fs afero.Fs) Option {
	return func(e *environment) {
		if fs != nil {
			e.fs = fs
		}
	}
}

// WithGetenv sets the environment lookup.
func WithGetenv(getenv func(string) string) Option {
	return func(e *environment) {
		if getenv != nil {
			e.getenv = getenv
		}
	}
}

// WithPromptDriver sets the driver used by the fill command.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(e *environment) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(opts ...Option) *cobra.Command {
	env := &environment{
		fs:     afero.NewOsFs(),
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(env)
		}
	}

	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Build, store and fill forms from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return load(cmd, env, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to config file (default ~/.formbuilder/config.yaml)")
	pf.StringVar(&flags.storeDir, "store-dir", "", "Directory holding the form collection")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	registerListCmd(rootCmd)
	registerShowCmd(rootCmd)
	registerImportCmd(rootCmd)
	registerExportCmd(rootCmd)
	registerDeleteCmd(rootCmd)
	registerFillCmd(rootCmd)
	registerConfigCmd(rootCmd)

	return rootCmd
}
