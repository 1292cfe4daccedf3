package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SheetPath string // hcl sheet file or directory

	Report    string // which report to render to stdout
	Node      string // target node id for node-scoped reports
	TreeDepth int    // depth limit for the tree report, -1 is unbounded

	LogFormat string
	LogLevel  string
}

// reportNeedsNode lists the reports that are scoped to a single node.
var reportNeedsNode = map[string]bool{
	"tree":   true,
	"impact": true,
	"path":   true,
}

// NewConfig validates the raw configuration and returns it, or an error
// describing the first problem found.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SheetPath == "" {
		return nil, errors.New("SheetPath is a required configuration field and cannot be empty")
	}

	switch cfg.Report {
	case "order", "cycles", "dirty", "stats", "viz", "tree", "impact", "path":
		// valid
	default:
		return nil, fmt.Errorf("invalid report %q: must be one of 'order', 'cycles', 'dirty', 'stats', 'viz', 'tree', 'impact', 'path'", cfg.Report)
	}

	if reportNeedsNode[cfg.Report] && cfg.Node == "" {
		return nil, fmt.Errorf("report %q requires a target node (-node)", cfg.Report)
	}

	return &cfg, nil
}
