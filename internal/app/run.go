package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/recalcgo/internal/ctxlog"
)

// Run renders the configured report for the loaded graph to the output writer.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "report", appConfig.Report)

	var err error
	switch appConfig.Report {
	case "order":
		err = a.renderLines(a.graph.TopologicalOrder(ctx))
	case "cycles":
		err = a.renderJSON(a.graph.FindCycles())
	case "dirty":
		err = a.renderLines(a.graph.DirtyNodes())
	case "stats":
		err = a.renderJSON(a.graph.Stats())
	case "viz":
		err = a.renderJSON(a.graph.VisualizationData())
	case "tree":
		tree := a.graph.DependencyTree(appConfig.Node, appConfig.TreeDepth)
		if tree == nil {
			return fmt.Errorf("unknown node %q", appConfig.Node)
		}
		err = a.renderJSON(tree)
	case "impact":
		tree := a.graph.ImpactAnalysis(appConfig.Node)
		if tree == nil {
			return fmt.Errorf("unknown node %q", appConfig.Node)
		}
		err = a.renderJSON(tree)
	case "path":
		path := a.graph.EvaluationPath(ctx, appConfig.Node)
		if path == nil {
			return fmt.Errorf("unknown node %q", appConfig.Node)
		}
		err = a.renderLines(path)
	default:
		return fmt.Errorf("invalid report %q", appConfig.Report)
	}
	if err != nil {
		return fmt.Errorf("failed to render report %q: %w", appConfig.Report, err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// renderLines writes one id per line, the plain-text form used by the
// list-shaped reports.
func (a *App) renderLines(ids []string) error {
	for _, id := range ids {
		if _, err := fmt.Fprintln(a.outW, id); err != nil {
			return err
		}
	}
	return nil
}

// renderJSON writes the value as indented JSON followed by a newline.
func (a *App) renderJSON(v any) error {
	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
