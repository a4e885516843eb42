package export

import (
	"encoding/json"
	"io"

	"github.com/soundprediction/graphgen/pkg/graph"
)

// NodeLink is the node-link JSON document for a graph, compatible with the
// format networkx and common graph viewers expect.
type NodeLink struct {
	Directed   bool           `json:"directed"`
	Multigraph bool           `json:"multigraph"`
	Nodes      []NodeLinkNode `json:"nodes"`
	Links      []NodeLinkEdge `json:"links"`
}

// NodeLinkNode is one node entry in a node-link document.
type NodeLinkNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// NodeLinkEdge is one edge entry in a node-link document.
type NodeLinkEdge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Label  string   `json:"label"`
	Weight int      `json:"weight"`
	Preds  []string `json:"preds"`
}

// ToNodeLink converts a graph to its node-link document. Node and link order
// follows the graph's deterministic insertion order.
func ToNodeLink(g *graph.Graph) *NodeLink {
	doc := &NodeLink{
		Directed: true,
		Nodes:    make([]NodeLinkNode, 0, g.NumNodes()),
		Links:    make([]NodeLinkEdge, 0, g.NumEdges()),
	}

	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeLinkNode{
			ID:    n.Label,
			Label: n.Label,
			Type:  n.Type,
		})
	}
	for _, e := range g.Edges() {
		doc.Links = append(doc.Links, NodeLinkEdge{
			Source: e.Source,
			Target: e.Target,
			Label:  e.Label,
			Weight: e.Weight,
			Preds:  e.Preds,
		})
	}
	return doc
}

// WriteJSON writes the graph as indented node-link JSON.
func WriteJSON(w io.Writer, g *graph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToNodeLink(g))
}
