package graph

import (
	"context"
	"time"

	"github.com/specialistvlad/recalcgo/internal/config"
	"github.com/specialistvlad/recalcgo/internal/ctxlog"
)

// Lookups supplies host-side name resolution used during edge rebuilding.
// Both callbacks may be nil, in which case a default mapping applies:
// a field reference resolves to the field name itself, and entity references
// resolve to synthetic "entity.<name>" / "entity.<name>.<field>" ids.
type Lookups struct {
	// ResolveEntity maps an entity name to the graph node id representing
	// that entity. Returning false drops the descriptor without error.
	ResolveEntity func(name string) (string, bool)
	// ResolveField maps a field to its owning node id. The entity argument
	// is empty for same-scope field references. Returning false drops the
	// descriptor without error.
	ResolveField func(entity, field string) (string, bool)
}

// Graph owns the full set of nodes and their bidirectional edges. It is the
// single mutation surface for adding, updating and removing nodes.
type Graph struct {
	lookups Lookups

	// nodes is the id-keyed arena of all registered nodes.
	nodes map[string]*Node
	// dirty mirrors the set of nodes whose Status is StatusDirty.
	dirty map[string]struct{}
	// pending records dropped dependency references: wanted node id to the
	// set of declaring nodes. When the wanted id is later registered, each
	// recorded dependent has its edges rebuilt.
	pending map[string]map[string]struct{}

	// order is the memoized evaluation order, nil when invalidated.
	order []string

	// hits and misses count cache lookups since construction or the last
	// ClearCache.
	hits   int
	misses int

	// now is the clock used for cache timestamps and TTL checks.
	now func() time.Time
}

// New creates an initialized, empty Graph using the given host lookups.
func New(lookups Lookups) *Graph {
	return &Graph{
		lookups: lookups,
		nodes:   make(map[string]*Node),
		dirty:   make(map[string]struct{}),
		pending: make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node with the given id. Pure lookup, no side effects.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// SetNode creates the node if absent, or updates its declaration fields while
// preserving cache and statistics history. In both cases it rebuilds the
// node's outgoing edges, marks the node and its transitive dependents Dirty,
// and invalidates the memoized evaluation order. If other nodes previously
// declared a dependency on this id while it was unregistered, their edges are
// rebuilt too, so the missing edge appears without a re-save.
func (g *Graph) SetNode(ctx context.Context, decl *config.NodeDecl) *Node {
	logger := ctxlog.FromContext(ctx)

	n, exists := g.nodes[decl.Name]
	if !exists {
		n = &Node{
			ID:         decl.Name,
			Status:     StatusDirty,
			DependsOn:  make(map[string]struct{}),
			DependedBy: make(map[string]struct{}),
		}
		g.nodes[decl.Name] = n
		g.dirty[decl.Name] = struct{}{}
		logger.Debug("Registered new node.", "id", n.ID)
	} else {
		logger.Debug("Updating node declaration.", "id", n.ID)
	}

	n.Formula = decl.Formula
	n.ReturnType = decl.ReturnType
	n.Declared = decl.Dependencies
	n.CacheTTL = decl.CacheTTL
	n.declaredVolatile = decl.Volatile
	n.Volatile = decl.Volatile

	g.rebuildEdges(ctx, n)

	// A declaration change always invalidates this node and everyone
	// downstream, whether or not the node was already dirty.
	g.cascadeDirty(ctx, n.ID)

	// Late registration: relink nodes that wanted this id while it was
	// absent, then invalidate them as well since they gained an edge.
	if waiters := g.pending[n.ID]; len(waiters) > 0 {
		delete(g.pending, n.ID)
		for waiterID := range waiters {
			waiter, ok := g.nodes[waiterID]
			if !ok {
				continue
			}
			logger.Debug("Relinking node after late dependency registration.", "id", waiterID, "dependency", n.ID)
			g.rebuildEdges(ctx, waiter)
			g.cascadeDirty(ctx, waiterID)
		}
	}

	g.invalidateOrder()
	return n
}

// RemoveNode deletes the node with the given id, severing all edges that
// reference it in either direction. Every former dependent becomes Dirty and
// keeps a pending reference so a later re-registration of the id relinks it.
// Returns false if the id is not registered.
func (g *Graph) RemoveNode(ctx context.Context, id string) bool {
	logger := ctxlog.FromContext(ctx)

	n, ok := g.nodes[id]
	if !ok {
		logger.Debug("RemoveNode: id not registered.", "id", id)
		return false
	}

	for depID := range n.DependsOn {
		if dep, ok := g.nodes[depID]; ok {
			delete(dep.DependedBy, id)
		}
	}

	for dependentID := range n.DependedBy {
		dependent, ok := g.nodes[dependentID]
		if !ok {
			continue
		}
		delete(dependent.DependsOn, id)
		g.recordPending(id, dependentID)
	}

	// The node no longer declares anything; scrub its waiter entries.
	g.dropWaiter(id)

	delete(g.nodes, id)
	delete(g.dirty, id)
	g.invalidateOrder()
	logger.Debug("Removed node.", "id", id, "former_dependents", len(n.DependedBy))

	for dependentID := range n.DependedBy {
		g.cascadeDirty(ctx, dependentID)
	}
	return true
}

// recordPending notes that dependentID declared a dependency resolving to
// wantedID, which is not currently registered.
func (g *Graph) recordPending(wantedID, dependentID string) {
	waiters, ok := g.pending[wantedID]
	if !ok {
		waiters = make(map[string]struct{})
		g.pending[wantedID] = waiters
	}
	waiters[dependentID] = struct{}{}
}

// dropWaiter removes the given node from every pending-reference entry.
func (g *Graph) dropWaiter(id string) {
	for wantedID, waiters := range g.pending {
		delete(waiters, id)
		if len(waiters) == 0 {
			delete(g.pending, wantedID)
		}
	}
}

// invalidateOrder discards the memoized evaluation order.
func (g *Graph) invalidateOrder() {
	g.order = nil
}
