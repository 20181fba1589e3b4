package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/blueprint/internal/cli"
	"github.com/alexanderramin/blueprint/internal/cli/formatter"
	"github.com/alexanderramin/blueprint/internal/config"
	"github.com/alexanderramin/blueprint/internal/db"
	"github.com/alexanderramin/blueprint/internal/repository"
	"github.com/alexanderramin/blueprint/internal/service"
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
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	blueprintRepo := repository.NewSQLiteBlueprintRepo(database)
	initiativeRepo := repository.NewSQLiteInitiativeRepo(database)
	versionRepo := repository.NewSQLiteCollectionVersionRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	formatter.SetLocale(cfg.Language())
	if cfg.NoColor {
		formatter.DisableColor()
	}

	app := &cli.App{
		Blueprints:  service.NewBlueprintService(blueprintRepo, uow, observers...),
		Initiatives: service.NewInitiativeService(initiativeRepo, uow, observers...),
		Settings:    service.NewSettingsService(settingsRepo),
		Analytics: service.NewAnalyticsService(
			blueprintRepo, initiativeRepo, versionRepo, settingsRepo,
			service.NewResultCache(cfg.CacheTTL, cfg.CacheCleanup),
			observers...,
		),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
