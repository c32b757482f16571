package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/krsplan/internal/cli/formatter"
	"github.com/alexanderramin/krsplan/internal/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the course catalog",
	}
	cmd.AddCommand(
		newCatalogImportCmd(app),
		newCatalogListCmd(app),
		newCatalogShowCmd(app),
		newCatalogClearCmd(app),
	)
	return cmd
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the catalog with the courses in a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Catalog.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(result))
			return nil
		},
	}
}

func newCatalogListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := jurusanFilter(cmd.Flags(), app.Planner.JurusanFilter())
			if err != nil {
				return err
			}
			courses, err := app.Catalog.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseList(courses, nil))
			return nil
		},
	}
	cmd.Flags().StringSlice("jurusan", nil, "Only list these jurusan (default from KRSPLAN_JURUSAN)")
	cmd.Flags().Bool("all", false, "List every jurusan")
	cmd.MarkFlagsMutuallyExclusive("jurusan", "all")
	return cmd
}

// jurusanFilter resolves the listing filter from --jurusan and --all.
// A nil result lists every jurusan.
func jurusanFilter(fs *pflag.FlagSet, fallback []string) ([]string, error) {
	all, err := fs.GetBool("all")
	if err != nil {
		return nil, err
	}
	if all {
		return nil, nil
	}
	if !fs.Changed("jurusan") {
		return fallback, nil
	}
	return fs.GetStringSlice("jurusan")
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <kode>",
		Short: "Show a course and its classes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Catalog.Get(cmd.Context(), args[0])
			if errors.Is(err, repository.ErrCourseNotFound) {
				return notFoundError(cmd.Context(), app, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCourseDetail(c))
			return nil
		},
	}
}

func newCatalogClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every course from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to clear the catalog without --yes")
				}
				confirmed := false
				if err := confirmForm("Clear the catalog?", "Every imported course is deleted.", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			if err := app.Catalog.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Catalog cleared."))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// notFoundError reports an unknown kode with close matches from the catalog.
func notFoundError(ctx context.Context, app *App, kode string) error {
	kode = strings.ToUpper(strings.TrimSpace(kode))
	suggestions, err := app.Catalog.Suggest(ctx, kode, 3)
	if err != nil || len(suggestions) == 0 {
		return fmt.Errorf("course %s not found", kode)
	}
	names := make([]string, len(suggestions))
	for i, c := range suggestions {
		names[i] = c.Kode
	}
	return fmt.Errorf("course %s not found (did you mean %s?)", kode, strings.Join(names, ", "))
}
