// Package depref defines the closed set of dependency descriptor kinds a node
// declaration may carry, and the canonical string syntax they are authored in.
//
// Descriptors are inputs to edge resolution only: they never form graph edges
// themselves. The graph's edge resolver maps each descriptor to a concrete
// node id (or, for volatile markers, to a flag on the declaring node).
package depref
