package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/krsplan/internal/cli"
	"github.com/alexanderramin/krsplan/internal/config"
	"github.com/alexanderramin/krsplan/internal/db"
	"github.com/alexanderramin/krsplan/internal/repository"
	"github.com/alexanderramin/krsplan/internal/service"
	"github.com/alexanderramin/krsplan/internal/submission"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessionID := uuid.New().String()

	var logOut io.Writer
	if cfg.LogUseCases {
		logOut = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(logOut, sessionID)

	var submitter submission.Submitter = submission.DirSubmitter{Dir: cfg.SubmitDir}
	if cfg.SubmitDir == config.SubmitStdout {
		submitter = submission.WriterSubmitter{W: os.Stdout}
	}

	courseRepo := repository.NewSQLiteCourseRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	catalog := service.NewCatalogService(courseRepo, uow, cfg.DefaultJurusan, observer)

	app := &cli.App{
		Catalog: catalog,
		Planner: service.NewPlannerService(catalog, submitter, service.PlannerConfig{
			SessionID:     sessionID,
			Locale:        cfg.MessageLocale(),
			ValidateDelay: cfg.ValidateDelay,
			Jurusan:       cfg.Jurusan,
		}, observer),
		HistoryPath: filepath.Join(filepath.Dir(cfg.DBPath), "shell_history"),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
