// This file contains the logic for translating HCL schema structs into the
// format-agnostic declaration model defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/recalcgo/internal/config"
	"github.com/specialistvlad/recalcgo/internal/depref"
	"github.com/specialistvlad/recalcgo/internal/schema"
)

// translateNode converts an HCL node block into the agnostic declaration.
func (l *Loader) translateNode(ctx context.Context, n *schema.Node) (*config.NodeDecl, error) {
	deps, err := depref.ParseAll(n.DependsOn)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", n.Name, err)
	}

	returnType, err := typeExprToCtyType(ctx, n.ReturnType)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", n.Name, err)
	}

	var ttl time.Duration
	if n.CacheTTL != "" {
		ttl, err = time.ParseDuration(n.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("node %q: invalid cache_ttl %q: %w", n.Name, n.CacheTTL, err)
		}
		if ttl < 0 {
			return nil, fmt.Errorf("node %q: cache_ttl must not be negative", n.Name)
		}
	}

	return &config.NodeDecl{
		Name:         n.Name,
		Formula:      n.Formula,
		Dependencies: deps,
		ReturnType:   returnType,
		Volatile:     n.Volatile,
		CacheTTL:     ttl,
	}, nil
}
