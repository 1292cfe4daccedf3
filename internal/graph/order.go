package graph

import (
	"context"
	"sort"

	"github.com/specialistvlad/recalcgo/internal/ctxlog"
)

// Three-state marking for depth-first traversal.
const (
	unvisited = iota
	inProgress
	done
)

// frame is one entry of the explicit DFS stack. Iterative traversal keeps
// pathological graphs from exhausting goroutine stack space.
type frame struct {
	id   string
	deps []string
	next int
}

// sortedDeps returns the node's dependency ids in deterministic order.
func (g *Graph) sortedDeps(n *Node) []string {
	deps := make([]string, 0, len(n.DependsOn))
	for id := range n.DependsOn {
		deps = append(deps, id)
	}
	sort.Strings(deps)
	return deps
}

// sortedIDs returns all node ids in deterministic order.
func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TopologicalOrder returns all node ids such that every dependency precedes
// every node that depends on it. Cycles never abort the ordering: the
// offending back-edge is logged and skipped, yielding a best-effort total
// order over the acyclic remainder. The order is memoized until the node set
// or any edge changes.
func (g *Graph) TopologicalOrder(ctx context.Context) []string {
	// The length comparison is a cheap guard against a stale memo surviving
	// an invalidation bug; mutation paths also invalidate explicitly.
	if g.order != nil && len(g.order) == len(g.nodes) {
		return append([]string(nil), g.order...)
	}

	logger := ctxlog.FromContext(ctx)
	state := make(map[string]int, len(g.nodes))
	order := make([]string, 0, len(g.nodes))

	for _, rootID := range g.sortedIDs() {
		if state[rootID] != unvisited {
			continue
		}
		stack := []frame{{id: rootID}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]

			if f.deps == nil && f.next == 0 {
				if state[f.id] == done {
					stack = stack[:len(stack)-1]
					continue
				}
				state[f.id] = inProgress
				f.deps = g.sortedDeps(g.nodes[f.id])
			}

			if f.next < len(f.deps) {
				depID := f.deps[f.next]
				f.next++
				dep, ok := g.nodes[depID]
				if !ok {
					continue
				}
				switch state[depID] {
				case unvisited:
					stack = append(stack, frame{id: dep.ID})
				case inProgress:
					// Back-edge: part of a cycle. Skip it and keep ordering
					// the acyclic remainder.
					logger.Warn("Cyclic dependency detected, skipping back-edge.", "from", f.id, "to", depID)
				}
			} else {
				state[f.id] = done
				order = append(order, f.id)
				stack = stack[:len(stack)-1]
			}
		}
	}

	g.order = order
	return append([]string(nil), order...)
}

// EvaluationPath returns the subset of the topological order consisting of
// the target and all of its transitive dependencies, dependency-first. This
// is exactly what a caller should evaluate to bring one node up to date.
// Returns nil for an unregistered id.
func (g *Graph) EvaluationPath(ctx context.Context, targetID string) []string {
	if _, ok := g.nodes[targetID]; !ok {
		ctxlog.FromContext(ctx).Debug("EvaluationPath: id not registered.", "id", targetID)
		return nil
	}

	needed := map[string]struct{}{targetID: {}}
	stack := []string{targetID}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := g.nodes[cur]
		if !ok {
			continue
		}
		for depID := range n.DependsOn {
			if _, seen := needed[depID]; seen {
				continue
			}
			needed[depID] = struct{}{}
			stack = append(stack, depID)
		}
	}

	path := make([]string, 0, len(needed))
	for _, id := range g.TopologicalOrder(ctx) {
		if _, ok := needed[id]; ok {
			path = append(path, id)
		}
	}
	return path
}

// WouldCreateCycle reports whether adding an edge from fromID to toID (fromID
// depending on toID) would close a cycle, i.e. whether toID already reaches
// fromID through its own dependencies. A self-edge always closes a cycle.
func (g *Graph) WouldCreateCycle(fromID, toID string) bool {
	if fromID == toID {
		return true
	}
	if _, ok := g.nodes[toID]; !ok {
		return false
	}

	visited := map[string]struct{}{toID: {}}
	stack := []string{toID}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == fromID {
			return true
		}
		n, ok := g.nodes[cur]
		if !ok {
			continue
		}
		for depID := range n.DependsOn {
			if _, seen := visited[depID]; seen {
				continue
			}
			visited[depID] = struct{}{}
			stack = append(stack, depID)
		}
	}
	return false
}

// FindCycles enumerates the dependency cycles currently present, each as the
// id path around the cycle. Diagnostics only: the graph tolerates transient
// cycles rather than refusing the mutations that introduce them.
func (g *Graph) FindCycles() [][]string {
	state := make(map[string]int, len(g.nodes))
	onPath := make(map[string]int)
	var path []string
	var cycles [][]string

	for _, rootID := range g.sortedIDs() {
		if state[rootID] != unvisited {
			continue
		}
		stack := []frame{{id: rootID}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]

			if f.deps == nil && f.next == 0 {
				if state[f.id] == done {
					stack = stack[:len(stack)-1]
					continue
				}
				state[f.id] = inProgress
				onPath[f.id] = len(path)
				path = append(path, f.id)
				f.deps = g.sortedDeps(g.nodes[f.id])
			}

			if f.next < len(f.deps) {
				depID := f.deps[f.next]
				f.next++
				if _, ok := g.nodes[depID]; !ok {
					continue
				}
				switch state[depID] {
				case unvisited:
					stack = append(stack, frame{id: depID})
				case inProgress:
					if start, ok := onPath[depID]; ok {
						cycles = append(cycles, append([]string(nil), path[start:]...))
					}
				}
			} else {
				state[f.id] = done
				path = path[:len(path)-1]
				delete(onPath, f.id)
				stack = stack[:len(stack)-1]
			}
		}
	}
	return cycles
}
