package graph

import (
	"context"
	"time"

	"github.com/specialistvlad/recalcgo/internal/ctxlog"
)

// IsCacheValid reports whether the node's cached value is usable right now:
// the node is Clean, not volatile, holds a value, and the value has not
// outlived its TTL. A TTL breach lazily transitions the node to Dirty, so the
// expiry cost is paid on access rather than by a timer.
func (g *Graph) IsCacheValid(id string) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	if n.Status != StatusClean || n.Volatile || !n.hasCachedValue() {
		return false
	}
	if n.CacheTTL > 0 && g.now().Sub(n.CachedAt) > n.CacheTTL {
		n.Status = StatusDirty
		n.clearCache()
		g.dirty[id] = struct{}{}
		return false
	}
	return true
}

// GetCached returns the node's cached value and a hit flag, updating the
// global hit/miss counters.
func (g *Graph) GetCached(ctx context.Context, id string) (any, bool) {
	if !g.IsCacheValid(id) {
		g.misses++
		return nil, false
	}
	g.hits++
	return g.nodes[id].CachedValue, true
}

// SetCached records a successful evaluation: the node becomes Clean, stores
// the value and timestamp, sheds any prior error, leaves the dirty set, and
// folds the evaluation duration into its rolling statistics.
func (g *Graph) SetCached(ctx context.Context, id string, value any, evalDuration time.Duration) {
	n, ok := g.nodes[id]
	if !ok {
		ctxlog.FromContext(ctx).Debug("SetCached: id not registered.", "id", id)
		return
	}

	now := g.now()
	n.Status = StatusClean
	n.CachedValue = value
	n.CachedAt = now
	n.LastError = nil
	delete(g.dirty, id)

	n.EvalCount++
	n.LastEvaluatedAt = now
	n.AvgEvalDuration = time.Duration(
		(int64(n.AvgEvalDuration)*int64(n.EvalCount-1) + int64(evalDuration)) / int64(n.EvalCount),
	)
}

// SetError records an evaluation failure for the node alone. Errors do not
// propagate to dependents: a dependent's own evaluation attempt is
// responsible for noticing that a dependency is not Clean and deciding how to
// proceed.
func (g *Graph) SetError(ctx context.Context, id string, evalErr error) {
	n, ok := g.nodes[id]
	if !ok {
		ctxlog.FromContext(ctx).Debug("SetError: id not registered.", "id", id)
		return
	}
	n.Status = StatusError
	n.clearCache()
	n.LastError = evalErr
	delete(g.dirty, id)
	ctxlog.FromContext(ctx).Debug("Recorded evaluation failure.", "id", id, "error", evalErr)
}

// MarkEvaluating records the caller-set in-flight marker so re-entrant
// evaluation requests for the same node can be detected and deduplicated by
// the caller. The graph never sets this status on its own.
func (g *Graph) MarkEvaluating(ctx context.Context, id string) {
	n, ok := g.nodes[id]
	if !ok {
		ctxlog.FromContext(ctx).Debug("MarkEvaluating: id not registered.", "id", id)
		return
	}
	n.Status = StatusEvaluating
	n.clearCache()
	delete(g.dirty, id)
}

// ClearCache marks every node dirty and resets the hit/miss counters. Full
// invalidation, e.g. after a schema change.
func (g *Graph) ClearCache(ctx context.Context) {
	g.MarkAllDirty(ctx)
	g.hits = 0
	g.misses = 0
}
