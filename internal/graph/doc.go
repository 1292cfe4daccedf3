// Package graph is the formula dependency graph and incremental-cache engine.
// It tracks which computed nodes depend on which other nodes, propagates
// invalidation when a node changes, produces a cycle-tolerant evaluation
// order, and manages per-node cached results (volatile and time-bounded
// included).
//
// The engine computes no formula values, persists nothing, and performs no
// I/O. Evaluation is the caller's job: the graph answers *what* must be
// re-evaluated and *in what order*, and records results written back through
// the cache operations.
//
// # Concurrency
//
// The graph provides no internal locking. All mutation (SetNode, RemoveNode,
// dirty marking, cache writes) must be externally serialized; wrap the graph
// in a mutual-exclusion boundary per instance if the host is multi-threaded.
// Pure lookups are safe concurrently only while no writer is active.
//
// # Status and the dirty set
//
// The dirty set mirrors StatusDirty exactly: a node enters it when its status
// becomes Dirty and leaves it on any transition away from Dirty (Clean,
// Evaluating, Error). Cached value and timestamp are present only while a
// node is Clean.
package graph
