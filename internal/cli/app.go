// Package cli wires the tabdeck library into a runnable command-line
// application.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tabdeck/tabdeck/internal/cli/styles"
	"github.com/tabdeck/tabdeck/internal/domain/repository"
	"github.com/tabdeck/tabdeck/internal/infrastructure/config"
	"github.com/tabdeck/tabdeck/internal/infrastructure/persistence/memory"
	"github.com/tabdeck/tabdeck/internal/infrastructure/persistence/sqlite"
	"github.com/tabdeck/tabdeck/internal/logging"
	"github.com/tabdeck/tabdeck/internal/messaging"
	"github.com/tabdeck/tabdeck/internal/tabs"
)

// App holds the wired dependencies shared by CLI commands.
type App struct {
	Config  config.Config
	Theme   *styles.Theme
	Store   repository.TabStore
	Bus     *messaging.Bus
	Manager *tabs.Manager

	ctx context.Context
	db  *sql.DB
}

// NewApp loads configuration and constructs the store, bus and
// manager. The manager is hydrated from persisted state.
func NewApp() (*App, error) {
	cfgManager, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	cfg, err := cfgManager.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	app := &App{
		Config: cfg,
		Theme:  styles.DefaultTheme(),
		ctx:    ctx,
	}

	switch cfg.Storage.Backend {
	case "memory":
		app.Store = memory.NewStore()
	case "sqlite", "":
		dbPath, err := cfg.DatabasePath()
		if err != nil {
			return nil, err
		}
		db, err := sqlite.NewConnection(ctx, dbPath)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.Store = sqlite.NewTabStore(db)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	app.Bus = messaging.NewBus(messaging.WithHistoryLimit(cfg.Messaging.HistoryLimit))
	app.Manager = tabs.New(app.Store, app.Bus)
	if err := app.Manager.Load(ctx); err != nil {
		return nil, fmt.Errorf("load tab state: %w", err)
	}

	return app, nil
}

// Ctx returns the app context carrying the logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Logger returns the app logger.
func (a *App) Logger() *zerolog.Logger {
	return logging.FromContext(a.ctx)
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
