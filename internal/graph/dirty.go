package graph

import (
	"context"
	"sort"

	"github.com/specialistvlad/recalcgo/internal/ctxlog"
)

// MarkDirty invalidates the node and every transitive dependent. If the node
// is already Dirty the call is a no-op: its dependents were invalidated when
// it became dirty.
func (g *Graph) MarkDirty(ctx context.Context, id string) {
	n, ok := g.nodes[id]
	if !ok {
		ctxlog.FromContext(ctx).Debug("MarkDirty: id not registered.", "id", id)
		return
	}
	if n.Status == StatusDirty {
		return
	}
	g.cascadeDirty(ctx, id)
}

// cascadeDirty marks the node Dirty unconditionally and walks DependedBy
// edges to invalidate every transitive dependent. The visited set is local to
// this call so the traversal is cycle-safe without suppressing later,
// independent propagations. Dependents already Dirty are not expanded: their
// own downstream was invalidated when they became dirty.
func (g *Graph) cascadeDirty(ctx context.Context, id string) {
	logger := ctxlog.FromContext(ctx)

	visited := map[string]struct{}{id: {}}
	stack := []string{id}
	root := true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, ok := g.nodes[cur]
		if !ok {
			continue
		}
		if !root && n.Status == StatusDirty {
			continue
		}
		root = false

		n.Status = StatusDirty
		n.clearCache()
		n.LastError = nil
		g.dirty[cur] = struct{}{}

		for dependentID := range n.DependedBy {
			if _, seen := visited[dependentID]; seen {
				continue
			}
			visited[dependentID] = struct{}{}
			stack = append(stack, dependentID)
		}
	}
	logger.Debug("Dirty propagation complete.", "root", id, "visited", len(visited))
}

// MarkAllDirty unconditionally marks every node dirty, e.g. after a bulk
// external data refresh. No per-node cascade is needed: the sweep is total.
func (g *Graph) MarkAllDirty(ctx context.Context) {
	for id, n := range g.nodes {
		n.Status = StatusDirty
		n.clearCache()
		n.LastError = nil
		g.dirty[id] = struct{}{}
	}
	ctxlog.FromContext(ctx).Debug("Marked all nodes dirty.", "count", len(g.nodes))
}

// ClearVolatileCache invalidates only volatile nodes (and, through normal
// propagation, their dependents). Call it on every recomputation tick, before
// evaluating anything that might read current time.
func (g *Graph) ClearVolatileCache(ctx context.Context) {
	for id, n := range g.nodes {
		if n.Volatile {
			g.MarkDirty(ctx, id)
		}
	}
}

// DirtyNodes returns the ids of all currently dirty nodes, sorted for
// deterministic output.
func (g *Graph) DirtyNodes() []string {
	ids := make([]string, 0, len(g.dirty))
	for id := range g.dirty {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
