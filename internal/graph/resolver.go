package graph

import (
	"context"

	"github.com/specialistvlad/recalcgo/internal/ctxlog"
	"github.com/specialistvlad/recalcgo/internal/depref"
)

// rebuildEdges derives the node's outgoing edge set from its declared
// dependency descriptors, maintaining the inverse DependedBy sets on both the
// dropped and the newly linked neighbors.
//
// Descriptors that resolve to an id not currently registered produce no edge
// and no error; the unresolved id is recorded in the pending index so a later
// registration of that id relinks this node. A descriptor whose host lookup
// starts answering differently is not retried this way; the node must be
// re-registered for the new answer to take effect.
func (g *Graph) rebuildEdges(ctx context.Context, n *Node) {
	logger := ctxlog.FromContext(ctx)

	// Stale waiter entries from the previous declaration are re-derived below.
	g.dropWaiter(n.ID)

	resolved := make(map[string]struct{}, len(n.Declared))
	for _, ref := range n.Declared {
		targetID, ok := g.resolveRef(ref)
		if !ok {
			if ref.Kind == depref.KindVolatile {
				n.Volatile = true
			} else {
				logger.Debug("Dependency descriptor dropped by host lookup.", "id", n.ID, "descriptor", ref.String())
			}
			continue
		}
		if targetID == n.ID {
			logger.Debug("Ignoring self-referential dependency.", "id", n.ID, "descriptor", ref.String())
			continue
		}
		if _, registered := g.nodes[targetID]; !registered {
			logger.Debug("Dependency target not registered, deferring edge.", "id", n.ID, "target", targetID)
			g.recordPending(targetID, n.ID)
			continue
		}
		resolved[targetID] = struct{}{}
	}

	for oldID := range n.DependsOn {
		if _, keep := resolved[oldID]; keep {
			continue
		}
		if old, ok := g.nodes[oldID]; ok {
			delete(old.DependedBy, n.ID)
		}
	}
	for newID := range resolved {
		g.nodes[newID].DependedBy[n.ID] = struct{}{}
	}

	n.DependsOn = resolved
	g.invalidateOrder()
}

// resolveRef maps a single descriptor to a candidate node id. The returned
// bool is false when the descriptor produces no edge at all: volatile markers
// and references the host lookups decline.
func (g *Graph) resolveRef(ref depref.Ref) (string, bool) {
	switch ref.Kind {
	case depref.KindField:
		if g.lookups.ResolveField != nil {
			return g.lookups.ResolveField("", ref.Name)
		}
		return ref.Name, true
	case depref.KindEntity:
		if g.lookups.ResolveEntity != nil {
			return g.lookups.ResolveEntity(ref.Name)
		}
		return "entity." + ref.Name, true
	case depref.KindEntityField:
		if g.lookups.ResolveField != nil {
			return g.lookups.ResolveField(ref.Name, ref.Field)
		}
		return "entity." + ref.Name + "." + ref.Field, true
	case depref.KindNamedNode:
		return ref.Name, true
	case depref.KindVolatile:
		return "", false
	default:
		return "", false
	}
}
