package graph

import (
	"time"

	"github.com/specialistvlad/recalcgo/internal/depref"
	"github.com/zclconf/go-cty/cty"
)

// Status is the evaluation state of a node.
type Status int

const (
	// StatusDirty indicates the node must be re-evaluated before its value
	// can be trusted. Nodes are created Dirty.
	StatusDirty Status = iota
	// StatusClean indicates the node holds a cached value from a successful
	// evaluation.
	StatusClean
	// StatusEvaluating is a caller-set marker for an in-flight evaluation,
	// used to deduplicate re-entrant evaluation requests. The graph never
	// sets it autonomously.
	StatusEvaluating
	// StatusError indicates the last evaluation failed; LastError holds the
	// detail until a later evaluation succeeds.
	StatusError
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusDirty:
		return "dirty"
	case StatusClean:
		return "clean"
	case StatusEvaluating:
		return "evaluating"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Node is a single formula-bearing computation unit: its declaration, its
// resolved edges, its cache contents and its evaluation statistics.
//
// Fields are exported for inspection but must be treated as read-only by
// callers; all mutation goes through Graph operations so that edge inverses,
// the dirty set and the memoized order stay consistent.
type Node struct {
	// ID is the stable, externally assigned identifier. Unique per graph.
	ID string
	// Formula is the raw formula text, carried for diagnostics only.
	Formula string
	// ReturnType is the declared result type of the formula.
	ReturnType cty.Type
	// Declared is the ordered dependency descriptor list from the last
	// declaration. Descriptors are resolution input only; they are not edges.
	Declared []depref.Ref

	// DependsOn is the set of node ids this node depends on (outgoing
	// edges), derived from Declared by the edge resolver. Never hand-edited.
	DependsOn map[string]struct{}
	// DependedBy is the inverse edge set: ids of nodes that depend on this
	// node. Invariant: B ∈ A.DependedBy ⇔ A ∈ B.DependsOn.
	DependedBy map[string]struct{}

	// Volatile nodes are never cache-valid, regardless of status. Set from
	// the declaration or by a volatile-function marker among the descriptors.
	Volatile bool
	// CacheTTL bounds the age of a cached value. Zero means unbounded.
	CacheTTL time.Duration

	// Status is the node's evaluation state.
	Status Status
	// CachedValue holds the last evaluated result while Status is Clean.
	CachedValue any
	// CachedAt is the write time of CachedValue. A zero CachedAt means no
	// value is cached.
	CachedAt time.Time
	// LastError holds the last evaluation failure while Status is Error.
	LastError error

	// EvalCount is the number of successful evaluations written back.
	EvalCount int
	// LastEvaluatedAt is the time of the most recent successful write-back.
	LastEvaluatedAt time.Time
	// AvgEvalDuration is the rolling average evaluation duration over all
	// successful evaluations.
	AvgEvalDuration time.Duration

	// declaredVolatile remembers the declaration's own flag so edge
	// re-resolution can re-derive Volatile without losing marker state.
	declaredVolatile bool
}

// clearCache drops the cached value and timestamp. Called on every status
// transition away from Clean.
func (n *Node) clearCache() {
	n.CachedValue = nil
	n.CachedAt = time.Time{}
}

// hasCachedValue reports whether a cached value is present.
func (n *Node) hasCachedValue() bool {
	return !n.CachedAt.IsZero()
}
