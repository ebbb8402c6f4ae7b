package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func registerDeleteCmd(parent *cobra.Command) {
	parent.AddCommand(newDeleteCmd())
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete FORM_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a saved form",
		Example: `  # Delete a form
  formbuilder delete 3f2a9c1e-...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runDelete(cmd, app, args[0])
		},
	}
}

func runDelete(cmd *cobra.Command, app *appContext, id string) error {
	removed, err := app.newSession(cmd).Delete(cmd.Context(), id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("form %q not found", id)
	}
	app.Logger.Info("form deleted", "form", id)
	return nil
}
