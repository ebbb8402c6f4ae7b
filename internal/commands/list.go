package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/spf13/cobra"
)

func registerListCmd(parent *cobra.Command) {
	parent.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved forms",
		Long: `List every form in the store.
Displays form ids, names, field counts and the last update time.`,
		Example: `  # List forms
  formbuilder list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runList(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

func runList(ctx context.Context, app *appContext, out io.Writer) error {
	forms, err := app.Repo.List(ctx)
	if err != nil {
		return err
	}
	if len(forms) == 0 {
		_, _ = fmt.Fprintln(out, "No forms saved.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tFIELDS\tUPDATED")
	for _, form := range forms {
		name := form.Name
		if utf8.RuneCountInString(name) > 40 {
			name = string([]rune(name)[:37]) + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", form.ID, name, len(form.Fields), formTime(form))
	}
	return w.Flush()
}

func formTime(form model.Form) string {
	switch {
	case form.UpdatedAt != nil:
		return form.UpdatedAt.UTC().Format(time.RFC3339)
	case form.CreatedAt != nil:
		return form.CreatedAt.UTC().Format(time.RFC3339)
	default:
		return "-"
	}
}
