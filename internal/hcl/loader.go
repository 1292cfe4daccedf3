package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/recalcgo/internal/config"
	"github.com/specialistvlad/recalcgo/internal/ctxlog"
	"github.com/specialistvlad/recalcgo/internal/fsutil"
	"github.com/specialistvlad/recalcgo/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL sheet loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the sheet loading process: discover .hcl files under the
// given paths, parse and decode every `node` block, and translate them into
// the format-agnostic model. Duplicate node ids are resolved last-wins, in
// file order, matching the registration semantics of the graph store.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindSheetFiles(paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered sheet files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse sheet file %s: %w", file, diags)
		}

		var sheet schema.SheetConfig
		diags = gohcl.DecodeBody(hclFile.Body, nil, &sheet)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode sheet file %s: %w", file, diags)
		}

		for _, node := range sheet.Nodes {
			decl, err := l.translateNode(ctx, node)
			if err != nil {
				return nil, fmt.Errorf("in sheet file %s: %w", file, err)
			}
			model.Nodes = append(model.Nodes, decl)
		}
	}

	logger.Debug("HCL loading complete.", "nodes", len(model.Nodes))
	return model, nil
}
