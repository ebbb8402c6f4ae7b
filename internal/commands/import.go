package commands

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/export"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type importOptions struct {
	name string
}

func registerImportCmd(parent *cobra.Command) {
	parent.AddCommand(newImportCmd())
}

func newImportCmd() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a form definition from YAML or JSON",
		Long: `Import a form definition and save it as a new form.
The document is validated before saving: field ids must be unique and
derived fields may only reference existing input fields.`,
		Example: `  # Import using the name stored in the file
  formbuilder import signup.yaml

  # Import under a different name
  formbuilder import signup.yaml --name "Signup v2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runImport(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Name to save the form under")

	return cmd
}

func runImport(cmd *cobra.Command, app *appContext, path string, opts *importOptions) error {
	data, err := afero.ReadFile(app.env.fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	form, err := export.UnmarshalYAML(data)
	if err != nil {
		return err
	}

	name := form.Name
	if strings.TrimSpace(opts.name) != "" {
		name = opts.name
	}

	s := app.newSession(cmd)
	if err := s.Import(form); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	id, err := s.Save(cmd.Context(), name)
	if err != nil {
		return err
	}
	app.Logger.Info("form imported", "form", id, "path", path)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as %s\n", strings.TrimSpace(name), id)
	return nil
}
