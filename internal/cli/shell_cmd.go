package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive planning session",
		Long: `Start an interactive shell holding one planning session: choose
courses, rank their classes, validate and submit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(app)
		},
	}
}

func runShell(app *App) error {
	_, err := tea.NewProgram(newShellModel(app)).Run()
	return err
}
