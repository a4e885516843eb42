// Package graph folds relation triplets into a directed graph with
// weighted, predicate-annotated edges.
//
// Nodes are keyed by exact label string and created lazily the first time a
// label appears as a subject or object. There is at most one edge per ordered
// (source, target) pair: repeated triplets for the same pair increment the
// edge weight and extend its predicate set instead of adding parallel edges.
// Self-loops aggregate like any other edge.
//
// All exposure is deterministic: nodes, edges, and per-edge predicates come
// back in first-seen insertion order, never map iteration order.
package graph
