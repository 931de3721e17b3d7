package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mroussel/frais/internal/cli"
	"github.com/mroussel/frais/internal/config"
	"github.com/mroussel/frais/internal/db"
	"github.com/mroussel/frais/internal/logging"
	"github.com/mroussel/frais/internal/repository"
	"github.com/mroussel/frais/internal/session"
	"github.com/mroussel/frais/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessionRepo := repository.NewSQLiteSessionRepo(database)
	cacheRepo := repository.NewSQLiteBillCacheRepo(database)
	sessions := session.NewSessions(sessionRepo)

	app := &cli.App{
		Sessions:     sessions,
		Cache:        cacheRepo,
		InitialRoute: cfg.InitialRoute,
	}
	if cfg.APIAddress != "" {
		app.Store = store.NewHTTPStore(cfg.APIAddress, sessions.Token)
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
