package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aolshev/rigscene/internal/catalog"
	"github.com/aolshev/rigscene/internal/ctxlog"
	"github.com/aolshev/rigscene/internal/model"
	"github.com/aolshev/rigscene/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	registry  *registry.Registry
	catalog   *catalog.Catalog
	workspace *model.Workspace
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, registry, and
// catalog, and the workspace model already loaded.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	ws, err := model.LoadWorkspaceRecursively(ctx, cfg.ScenePath)
	if err != nil {
		// A failure to load the scene files is a fatal startup error.
		panic(fmt.Errorf("failed to load scene workspace: %w", err))
	}
	logger.Debug("Workspace loaded into model.")

	return &App{
		outW:      outW,
		logger:    logger,
		registry:  registry.New(),
		catalog:   catalog.New(),
		workspace: ws,
	}
}

// Logger returns the application's configured logger, so callers driving
// compilation themselves can carry it through their context.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Registry returns the application's sensor kind registry. This is
// primarily for testing and embedding.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Catalog returns the application's variant catalog.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Workspace returns the loaded scene model.
func (a *App) Workspace() *model.Workspace {
	return a.workspace
}
