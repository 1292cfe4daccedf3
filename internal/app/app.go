package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/recalcgo/internal/config"
	"github.com/specialistvlad/recalcgo/internal/ctxlog"
	"github.com/specialistvlad/recalcgo/internal/graph"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	model  *config.Model
	graph  *graph.Graph
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a populated
// dependency graph.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load all node declarations into the format-agnostic model first.
	model, err := loader.Load(ctx, appConfig.SheetPath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load sheet: %w", err))
	}
	logger.Debug("Sheet loaded and translated into unified model.", "nodes", len(model.Nodes))

	g := graph.New(graph.Lookups{})
	for _, decl := range model.Nodes {
		g.SetNode(ctx, decl)
	}
	logger.Debug("Dependency graph populated.", "node_count", g.Len())

	return &App{
		outW:   outW,
		logger: logger,
		model:  model,
		graph:  g,
	}
}

// Graph returns the application's dependency graph. This is primarily for testing.
func (a *App) Graph() *graph.Graph {
	return a.graph
}
