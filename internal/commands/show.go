package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/spf13/cobra"
)

func registerShowCmd(parent *cobra.Command) {
	parent.AddCommand(newShowCmd())
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FORM_ID",
		Short: "Show the fields of a saved form",
		Example: `  # Describe a form
  formbuilder show 3f2a9c1e-...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runShow(cmd.Context(), app, args[0], cmd.OutOrStdout())
		},
	}
}

func runShow(ctx context.Context, app *appContext, id string, out io.Writer) error {
	form, err := requireForm(ctx, app, id)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Name:    %s\n", form.Name)
	_, _ = fmt.Fprintf(out, "ID:      %s\n", form.ID)
	if form.CreatedAt != nil {
		_, _ = fmt.Fprintf(out, "Created: %s\n", form.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(out, "Updated: %s\n\n", formTime(form))

	if len(form.Fields) == 0 {
		_, _ = fmt.Fprintln(out, "No fields defined.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTYPE\tLABEL\tREQUIRED\tDETAILS")
	for _, field := range form.Fields {
		required := "no"
		if field.Required {
			required = "yes"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", field.ID, field.Type, field.Label, required, fieldDetails(form, field))
	}
	return w.Flush()
}

func requireForm(ctx context.Context, app *appContext, id string) (model.Form, error) {
	form, ok, err := app.Repo.Get(ctx, id)
	if err != nil {
		return model.Form{}, err
	}
	if !ok {
		return model.Form{}, fmt.Errorf("form %q not found", id)
	}
	return form, nil
}

func fieldDetails(form model.Form, field model.Field) string {
	var parts []string
	if field.IsDerived() {
		parts = append(parts, string(field.DerivedType))
		if field.Formula != "" {
			parts = append(parts, fmt.Sprintf("formula=%q", field.Formula))
		}
		parents := make([]string, 0, len(field.ParentFields))
		for _, id := range field.ParentFields {
			if parent, ok := form.Field(id); ok {
				parents = append(parents, parent.Label)
			} else {
				parents = append(parents, fmt.Sprintf("#%d?", id))
			}
		}
		if len(parents) > 0 {
			parts = append(parts, "from "+strings.Join(parents, ", "))
		}
	}
	if len(field.Options) > 0 {
		parts = append(parts, "options="+strings.Join(field.Options, "|"))
	}
	for _, rule := range []string{model.ValidationRuleMinLength, model.ValidationRuleMaxLength} {
		if n, ok := field.Validation.Bound(rule); ok {
			parts = append(parts, fmt.Sprintf("%s=%d", rule, n))
		}
	}
	for _, rule := range []string{model.ValidationRuleEmail, model.ValidationRulePassword} {
		if field.Validation.Enabled(rule) {
			parts = append(parts, rule)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "; ")
}
