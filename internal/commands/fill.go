package commands

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/spf13/cobra"
)

// ErrSubmissionRejected is returned when a filled form fails validation.
var ErrSubmissionRejected = errors.New(session.MessageSubmitRejected)

type fillOptions struct {
	confirm bool
}

func registerFillCmd(parent *cobra.Command) {
	parent.AddCommand(newFillCmd())
}

func newFillCmd() *cobra.Command {
	opts := &fillOptions{}

	cmd := &cobra.Command{
		Use:   "fill FORM_ID",
		Short: "Fill in a saved form interactively",
		Long: `Prompt for every input field of a saved form, validating answers as they
are entered and showing computed fields as their inputs change. A summary
of the submission is printed at the end.`,
		Example: `  # Fill a form
  formbuilder fill 3f2a9c1e-...

  # Ask for confirmation before submitting
  formbuilder fill 3f2a9c1e-... --confirm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runFill(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.confirm, "confirm", false, "Confirm before submitting")

	return cmd
}

func runFill(cmd *cobra.Command, app *appContext, id string, opts *fillOptions) error {
	ctx := cmd.Context()
	s := app.newSession(cmd)
	ok, err := s.Load(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("form %q not found", id)
	}

	out := cmd.OutOrStdout()
	filler := tui.New(
		tui.WithPromptDriver(app.env.driver),
		tui.WithOutput(out),
		tui.WithConfirmSubmit(opts.confirm),
	)
	submission, err := filler.Fill(ctx, s)
	if err != nil {
		return err
	}
	if !submission.Valid {
		return ErrSubmissionRejected
	}

	summary, err := render.Summary(submission)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	_, _ = fmt.Fprintf(out, "\n%s\n", summary)
	app.Logger.Debug("form submitted", "form", id, "entries", len(submission.Entries))
	return nil
}
