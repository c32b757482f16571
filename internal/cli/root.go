package cli

import (
	"github.com/alexanderramin/krsplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Catalog service.CatalogService
	Planner service.PlannerService

	// HistoryPath is where the shell keeps its command history. Empty
	// disables history persistence.
	HistoryPath string

	// IsInteractive reports whether stdin is a terminal. When it is,
	// running krsplan without a subcommand opens the shell.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "krsplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "krsplan",
		Short: "Course registration (KRS) planner",
		Long: `Plan a semester's course registration: choose courses within the
credit and course limits, rank the classes you want for each, then
validate and submit the plan.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runShell(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newCatalogCmd(app),
		newCheckCmd(app),
		newShellCmd(app),
	)

	return root
}
