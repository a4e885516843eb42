package graph

import (
	"github.com/soundprediction/graphgen/pkg/types"
)

// NodeTypeEntity is the node type assigned to every aggregated entity node.
const NodeTypeEntity = "entity"

// Node is a canonical entity in the graph, identified by its label.
type Node struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Edge is the single directed edge for an ordered (source, target) pair.
// Label carries the predicate of the first triplet folded into the edge,
// Weight counts every folded triplet, and Preds lists the distinct predicates
// in first-seen order.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Label  string   `json:"label"`
	Weight int      `json:"weight"`
	Preds  []string `json:"preds"`
}

type edgeKey struct {
	source string
	target string
}

// Graph is a directed graph with nodes keyed by label and at most one edge
// per ordered node pair. The zero value is not usable; call New.
type Graph struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     map[edgeKey]*Edge
	edgeOrder []edgeKey
	skipped   int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[edgeKey]*Edge),
	}
}

// Build folds a batch of triplets into a fresh graph.
func Build(triplets []types.Triplet) *Graph {
	g := New()
	for _, t := range triplets {
		g.Add(t)
	}
	return g
}

// Add folds one triplet into the graph. Triplets with an empty or
// whitespace-only subject or object are skipped and counted, never an error;
// a skipped triplet creates no nodes and no edge. Returns whether the triplet
// was applied.
func (g *Graph) Add(t types.Triplet) bool {
	if !t.Valid() {
		g.skipped++
		return false
	}

	g.ensureNode(t.Subject)
	g.ensureNode(t.Object)

	key := edgeKey{source: t.Subject, target: t.Object}
	if edge, ok := g.edges[key]; ok {
		edge.Weight++
		edge.addPred(t.Predicate)
		return true
	}

	g.edges[key] = &Edge{
		Source: t.Subject,
		Target: t.Object,
		Label:  t.Predicate,
		Weight: 1,
		Preds:  []string{t.Predicate},
	}
	g.edgeOrder = append(g.edgeOrder, key)
	return true
}

func (g *Graph) ensureNode(label string) {
	if _, ok := g.nodes[label]; ok {
		return
	}
	g.nodes[label] = &Node{Label: label, Type: NodeTypeEntity}
	g.nodeOrder = append(g.nodeOrder, label)
}

// addPred appends the predicate if it is not already present. Predicate sets
// stay small enough that a linear scan is fine.
func (e *Edge) addPred(pred string) {
	for _, p := range e.Preds {
		if p == pred {
			return
		}
	}
	e.Preds = append(e.Preds, pred)
}

// Node returns the node with the given label.
func (g *Graph) Node(label string) (*Node, bool) {
	n, ok := g.nodes[label]
	return n, ok
}

// Edge returns the edge for the ordered (source, target) pair.
func (g *Graph) Edge(source, target string) (*Edge, bool) {
	e, ok := g.edges[edgeKey{source: source, target: target}]
	return e, ok
}

// Nodes returns all nodes in first-seen insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodeOrder))
	for i, label := range g.nodeOrder {
		out[i] = g.nodes[label]
	}
	return out
}

// Edges returns all edges in first-seen insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edgeOrder))
	for i, key := range g.edgeOrder {
		out[i] = g.edges[key]
	}
	return out
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return len(g.nodeOrder) }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.edgeOrder) }

// Skipped returns how many triplets were dropped for missing a subject or
// object.
func (g *Graph) Skipped() int { return g.skipped }
