package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type configInitOptions struct {
	force bool
}

func registerConfigCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialise configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())

	parent.AddCommand(cmd)
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireFromCommand(cmd)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(app.Config); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	opts := &configInitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Example: `  # Create ~/.formbuilder/config.yaml
  formbuilder config init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runConfigInit(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, app *appContext, opts *configInitOptions) error {
	path := app.ConfigPath
	exists, err := afero.Exists(app.env.fs, path)
	if err != nil {
		return err
	}
	if exists && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := app.Config.Save(app.env.fs, path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
