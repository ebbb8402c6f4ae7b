package commands

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/export"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	format string
	output string
}

func registerExportCmd(parent *cobra.Command) {
	parent.AddCommand(newExportCmd())
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export FORM_ID",
		Short: "Export a saved form",
		Long: `Export a saved form as YAML, JSON or an OpenAPI 3 document describing
its submission payload.`,
		Example: `  # Print YAML
  formbuilder export 3f2a9c1e-...

  # Write an OpenAPI document to a file
  formbuilder export 3f2a9c1e-... --format openapi -o signup.openapi.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runExport(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.FormatYAML),
		"Output format ("+strings.Join(formatNames(), ", ")+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, app *appContext, id string, opts *exportOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	form, err := requireForm(cmd.Context(), app, id)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return export.Encode(cmd.OutOrStdout(), form, format)
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, form, format); err != nil {
		return err
	}
	if err := afero.WriteFile(app.env.fs, opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", form.ID, opts.output)
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(export.Formats))
	for _, f := range export.Formats {
		names = append(names, string(f))
	}
	return names
}
