package graph

import "sort"

// TreeNode is one level of a dependency or impact tree.
type TreeNode struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	// Circular is true when this id already appears on the current branch;
	// the node is reported but not expanded again.
	Circular bool `json:"circular,omitempty"`
	// Truncated is true when the depth bound cut the expansion short.
	Truncated bool        `json:"truncated,omitempty"`
	Children  []*TreeNode `json:"children,omitempty"`
}

// DependencyTree expands the node's dependencies recursively up to maxDepth
// edge levels (negative means unbounded). The cycle guard is per branch, so
// sibling branches may legitimately revisit a shared ancestor while a direct
// cycle is marked Circular and not re-expanded.
func (g *Graph) DependencyTree(id string, maxDepth int) *TreeNode {
	return g.expandTree(id, maxDepth, make(map[string]struct{}), func(n *Node) map[string]struct{} {
		return n.DependsOn
	})
}

// ImpactAnalysis expands the tree of nodes transitively affected if the given
// node's value changes, following DependedBy edges without a depth bound.
func (g *Graph) ImpactAnalysis(id string) *TreeNode {
	return g.expandTree(id, -1, make(map[string]struct{}), func(n *Node) map[string]struct{} {
		return n.DependedBy
	})
}

// expandTree recursively builds a tree along the edge set selected by edges.
// onPath tracks the ids on the current branch only; entries are removed on
// unwind so siblings are not pruned.
func (g *Graph) expandTree(id string, depth int, onPath map[string]struct{}, edges func(*Node) map[string]struct{}) *TreeNode {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}

	tree := &TreeNode{ID: id, Status: n.Status.String()}
	if _, circular := onPath[id]; circular {
		tree.Circular = true
		return tree
	}

	next := edges(n)
	if len(next) == 0 {
		return tree
	}
	if depth == 0 {
		tree.Truncated = true
		return tree
	}

	onPath[id] = struct{}{}
	defer delete(onPath, id)

	childIDs := make([]string, 0, len(next))
	for childID := range next {
		childIDs = append(childIDs, childID)
	}
	sort.Strings(childIDs)

	for _, childID := range childIDs {
		if child := g.expandTree(childID, depth-1, onPath, edges); child != nil {
			tree.Children = append(tree.Children, child)
		}
	}
	return tree
}

// Stats aggregates graph-wide counts for diagnostics.
type Stats struct {
	Nodes         int            `json:"nodes"`
	Edges         int            `json:"edges"`
	ByStatus      map[string]int `json:"by_status"`
	VolatileNodes int            `json:"volatile_nodes"`
	DirtyNodes    int            `json:"dirty_nodes"`
	MaxFanIn      int            `json:"max_fan_in"`
	MaxFanOut     int            `json:"max_fan_out"`
	AvgFanIn      float64        `json:"avg_fan_in"`
	AvgFanOut     float64        `json:"avg_fan_out"`
	CacheHits     int            `json:"cache_hits"`
	CacheMisses   int            `json:"cache_misses"`
	CacheHitRate  float64        `json:"cache_hit_rate"`
}

// Stats returns aggregate statistics over the whole graph.
func (g *Graph) Stats() Stats {
	s := Stats{
		Nodes:       len(g.nodes),
		ByStatus:    make(map[string]int),
		DirtyNodes:  len(g.dirty),
		CacheHits:   g.hits,
		CacheMisses: g.misses,
	}

	var totalIn, totalOut int
	for _, n := range g.nodes {
		s.ByStatus[n.Status.String()]++
		if n.Volatile {
			s.VolatileNodes++
		}
		s.Edges += len(n.DependsOn)

		fanOut := len(n.DependsOn)
		fanIn := len(n.DependedBy)
		totalOut += fanOut
		totalIn += fanIn
		if fanOut > s.MaxFanOut {
			s.MaxFanOut = fanOut
		}
		if fanIn > s.MaxFanIn {
			s.MaxFanIn = fanIn
		}
	}

	if s.Nodes > 0 {
		s.AvgFanIn = float64(totalIn) / float64(s.Nodes)
		s.AvgFanOut = float64(totalOut) / float64(s.Nodes)
	}
	if lookups := g.hits + g.misses; lookups > 0 {
		s.CacheHitRate = float64(g.hits) / float64(lookups)
	}
	return s
}

// VizNode is one node of the flat visualization export.
type VizNode struct {
	ID       string `json:"id"`
	Formula  string `json:"formula,omitempty"`
	Status   string `json:"status"`
	Volatile bool   `json:"volatile,omitempty"`
	Error    string `json:"error,omitempty"`
}

// VizEdge is one directed dependency edge of the visualization export,
// pointing from a node to a node it depends on.
type VizEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// VizData is a flat node/edge list for external rendering. The engine itself
// attaches no meaning to it.
type VizData struct {
	Nodes []VizNode `json:"nodes"`
	Edges []VizEdge `json:"edges"`
}

// VisualizationData exports the graph as a flat, deterministically ordered
// node/edge list.
func (g *Graph) VisualizationData() VizData {
	viz := VizData{
		Nodes: make([]VizNode, 0, len(g.nodes)),
		Edges: make([]VizEdge, 0),
	}

	for _, id := range g.sortedIDs() {
		n := g.nodes[id]
		vn := VizNode{
			ID:       n.ID,
			Formula:  n.Formula,
			Status:   n.Status.String(),
			Volatile: n.Volatile,
		}
		if n.LastError != nil {
			vn.Error = n.LastError.Error()
		}
		viz.Nodes = append(viz.Nodes, vn)

		for _, depID := range g.sortedDeps(n) {
			viz.Edges = append(viz.Edges, VizEdge{From: n.ID, To: depID})
		}
	}
	return viz
}
