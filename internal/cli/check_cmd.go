package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/krsplan/internal/cli/formatter"
	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/importer"
	"github.com/alexanderramin/krsplan/internal/service"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	var submit bool

	cmd := &cobra.Command{
		Use:   "check <draft.json>",
		Short: "Replay a saved draft and validate it",
		Long: `Replay a draft plan against the catalog, print what validation finds
and exit non-zero when a fatal problem blocks submission. With --submit
a clean plan is submitted as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			draft, err := importer.LoadDraftFile(args[0])
			if err != nil {
				return err
			}
			replay, err := app.Planner.ReplayDraft(ctx, draft)
			if err != nil {
				return err
			}
			if s := formatter.FormatReplay(replay); s != "" {
				fmt.Fprintln(out, s)
			}
			fmt.Fprint(out, formatter.FormatSelection(app.Planner.Selection(), app.Planner.Plans()))
			fmt.Fprint(out, formatter.FormatSummary(app.Planner.Summary()))

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Validating plan...")
			}

			var report domain.Report
			if submit {
				result, err := app.Planner.Submit(ctx)
				stop()
				if err != nil && !errors.Is(err, service.ErrSubmissionBlocked) {
					return err
				}
				report = result.Report
				fmt.Fprintln(out, formatter.FormatSubmitResult(result))
			} else {
				report = app.Planner.Validate(ctx)
				stop()
				fmt.Fprintln(out, formatter.FormatReport(report))
			}

			if report.HasFatal() {
				return fmt.Errorf("plan has %d fatal problem(s)", len(report.BySeverity(domain.SeverityFatal)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&submit, "submit", false, "Submit the plan when it is valid")
	return cmd
}
