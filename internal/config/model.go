package config

import (
	"time"

	"github.com/specialistvlad/recalcgo/internal/depref"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a full sheet of
// node declarations, in authoring order.
type Model struct {
	Nodes []*NodeDecl
}

// NodeDecl is the format-agnostic declaration of a single formula-bearing
// node. It carries everything the external formula parser supplies when a
// formula is authored or edited; the graph derives edges and cache state
// from it.
type NodeDecl struct {
	// Name is the node's unique, externally assigned identifier.
	Name string
	// Formula is the raw formula text. The engine never parses or evaluates
	// it; it is carried for diagnostics and visualization.
	Formula string
	// Dependencies is the ordered list of dependency descriptors declared by
	// the formula parser.
	Dependencies []depref.Ref
	// ReturnType is the declared result type of the formula.
	ReturnType cty.Type
	// Volatile marks the node's result as time-dependent; volatile nodes are
	// never cache-valid.
	Volatile bool
	// CacheTTL bounds the age of a cached result. Zero means unbounded.
	CacheTTL time.Duration
}
