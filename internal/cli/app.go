// Package cli implements the interactive terminal front end. It is a pure
// view adapter: every command reads input, invokes a store operation, and
// renders the result; no task or account logic lives here.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/taskflow/internal/config"
	"github.com/dmitrijs2005/taskflow/internal/identity"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/reconcile"
	"github.com/dmitrijs2005/taskflow/internal/settings"
	"github.com/dmitrijs2005/taskflow/internal/state"
	"github.com/dmitrijs2005/taskflow/internal/storage"
	"github.com/dmitrijs2005/taskflow/internal/tasks"
)

type App struct {
	cfg        *config.Config
	identity   *identity.Service
	tasks      *tasks.Service
	settings   *settings.Service
	reconciler *reconcile.Reconciler
	store      *storage.SQLiteStore
	log        logging.Logger
	reader     *bufio.Reader
	out        io.Writer
}

// NewApp opens the local state database, loads the persisted snapshot, and
// wires the stores together.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	manager := state.NewManager(store, log)
	manager.Load(ctx)

	identityService := identity.NewService(manager, cfg, log)
	identityService.RestoreSession(ctx)

	return &App{
		cfg:        cfg,
		identity:   identityService,
		tasks:      tasks.NewService(manager, log),
		settings:   settings.NewService(manager),
		reconciler: reconcile.New(manager, log),
		store:      store,
		log:        log,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}, nil
}

// Run starts the reconciler on its own goroutine and enters the REPL.
func (a *App) Run(ctx context.Context) {
	go a.reconciler.Start(ctx, a.cfg.ReconcileInterval)
	a.Root(ctx)
}

// Close releases the state database handle.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) isLoggedIn() bool {
	return a.identity.CurrentUser() != nil
}
