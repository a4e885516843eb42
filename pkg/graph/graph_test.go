package graph_test

import (
	"testing"

	"github.com/soundprediction/graphgen/pkg/graph"
	"github.com/soundprediction/graphgen/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAggregatesEdges(t *testing.T) {
	g := graph.Build([]types.Triplet{
		{Subject: "A", Predicate: "works_at", Object: "B"},
		{Subject: "A", Predicate: "works_at", Object: "B"},
		{Subject: "A", Predicate: "founded", Object: "B"},
	})

	assert.Equal(t, 2, g.NumNodes())
	assert.Equal(t, 1, g.NumEdges())

	edge, ok := g.Edge("A", "B")
	require.True(t, ok)
	assert.Equal(t, 3, edge.Weight)
	assert.Equal(t, "works_at", edge.Label)
	assert.Equal(t, []string{"works_at", "founded"}, edge.Preds)
}

func TestAddSkipsMalformedTriplets(t *testing.T) {
	tests := []struct {
		name    string
		triplet types.Triplet
	}{
		{"empty object", types.Triplet{Subject: "A", Predicate: "rel", Object: ""}},
		{"empty subject", types.Triplet{Subject: "", Predicate: "rel", Object: "B"}},
		{"whitespace subject", types.Triplet{Subject: "   ", Predicate: "rel", Object: "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New()
			assert.False(t, g.Add(tt.triplet))
			assert.Equal(t, 0, g.NumNodes())
			assert.Equal(t, 0, g.NumEdges())
			assert.Equal(t, 1, g.Skipped())
		})
	}
}

func TestSelfLoop(t *testing.T) {
	g := graph.Build([]types.Triplet{
		{Subject: "A", Predicate: "self_rel", Object: "A"},
	})

	assert.Equal(t, 1, g.NumNodes())
	assert.Equal(t, 1, g.NumEdges())

	edge, ok := g.Edge("A", "A")
	require.True(t, ok)
	assert.Equal(t, 1, edge.Weight)
	assert.Equal(t, "self_rel", edge.Label)
}

func TestDirectedEdgesAreDistinct(t *testing.T) {
	g := graph.Build([]types.Triplet{
		{Subject: "A", Predicate: "knows", Object: "B"},
		{Subject: "B", Predicate: "knows", Object: "A"},
	})

	assert.Equal(t, 2, g.NumEdges())
	ab, ok := g.Edge("A", "B")
	require.True(t, ok)
	assert.Equal(t, 1, ab.Weight)
	ba, ok := g.Edge("B", "A")
	require.True(t, ok)
	assert.Equal(t, 1, ba.Weight)
}

func TestNodesLazyCreationAndType(t *testing.T) {
	g := graph.Build([]types.Triplet{
		{Subject: "Alice", Predicate: "leads", Object: "Acme"},
	})

	node, ok := g.Node("Alice")
	require.True(t, ok)
	assert.Equal(t, "Alice", node.Label)
	assert.Equal(t, graph.NodeTypeEntity, node.Type)

	_, ok = g.Node("leads")
	assert.False(t, ok, "predicates must not become nodes")
}

func TestDeterministicOrdering(t *testing.T) {
	triplets := []types.Triplet{
		{Subject: "C", Predicate: "r1", Object: "A"},
		{Subject: "A", Predicate: "r2", Object: "B"},
		{Subject: "C", Predicate: "r3", Object: "A"},
		{Subject: "B", Predicate: "r4", Object: "C"},
	}

	first := graph.Build(triplets)
	second := graph.Build(triplets)

	var firstNodes, secondNodes []string
	for _, n := range first.Nodes() {
		firstNodes = append(firstNodes, n.Label)
	}
	for _, n := range second.Nodes() {
		secondNodes = append(secondNodes, n.Label)
	}

	// Insertion order, not map order.
	assert.Equal(t, []string{"C", "A", "B"}, firstNodes)
	assert.Equal(t, firstNodes, secondNodes)

	ca, ok := first.Edge("C", "A")
	require.True(t, ok)
	assert.Equal(t, []string{"r1", "r3"}, ca.Preds)
	assert.Equal(t, "r1", ca.Label)

	assert.Equal(t, first.Edges(), second.Edges())
}

func TestRepeatedPredicateDoesNotGrowPreds(t *testing.T) {
	g := graph.New()
	for i := 0; i < 5; i++ {
		g.Add(types.Triplet{Subject: "A", Predicate: "rel", Object: "B"})
	}

	edge, ok := g.Edge("A", "B")
	require.True(t, ok)
	assert.Equal(t, 5, edge.Weight)
	assert.Equal(t, []string{"rel"}, edge.Preds)
}
