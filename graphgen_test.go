package graphgen_test

import (
	"context"
	"errors"
	"testing"

	"github.com/soundprediction/graphgen"
	"github.com/soundprediction/graphgen/pkg/dedup"
	"github.com/soundprediction/graphgen/pkg/embedder"
	"github.com/soundprediction/graphgen/pkg/extract"
	"github.com/soundprediction/graphgen/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashEmbedder derives a deterministic unit vector from each text so equal
// strings are identical and distinct strings are (almost surely) dissimilar.
type hashEmbedder struct{}

func (hashEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, 8)
		for j, r := range t {
			v[(j+int(r))%8] += float32(r%13) + 1
		}
		out[i] = v
	}
	return out, nil
}

func (h hashEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embs, _ := h.Embed(ctx, []string{text})
	return embs[0], nil
}

func (hashEmbedder) Dimensions() int { return 8 }
func (hashEmbedder) Close() error    { return nil }

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, embedder.NewBackendError("fake", errors.New("unreachable"))
}

func (f failingEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return nil, embedder.NewBackendError("fake", errors.New("unreachable"))
}

func (failingEmbedder) Dimensions() int { return 8 }
func (failingEmbedder) Close() error    { return nil }

func newTestClient(t *testing.T, client embedder.Client) *graphgen.Client {
	t.Helper()
	entities := extract.NewHeuristicEntityExtractor()
	c, err := graphgen.NewClient(
		entities,
		extract.NewHeuristicRelationExtractor(entities),
		dedup.New(client, dedup.WithThreshold(0.95)),
		nil,
	)
	require.NoError(t, err)
	return c
}

func TestNewClientValidation(t *testing.T) {
	_, err := graphgen.NewClient(nil, nil, dedup.New(hashEmbedder{}), nil)
	assert.ErrorIs(t, err, graphgen.ErrNoExtractor)

	entities := extract.NewHeuristicEntityExtractor()
	_, err = graphgen.NewClient(entities, extract.NewHeuristicRelationExtractor(entities), nil, nil)
	assert.ErrorIs(t, err, graphgen.ErrNoDeduplicator)
}

func TestGenerateFromText(t *testing.T) {
	c := newTestClient(t, hashEmbedder{})
	defer c.Close()

	result, err := c.GenerateFromText(context.Background(),
		"Alice founded Acme. Acme employs Bob.")
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.NotZero(t, result.Graph.NumNodes())
	assert.NotZero(t, result.Graph.NumEdges())

	edge, ok := result.Graph.Edge("Alice", "Acme.")
	if !ok {
		// Sentence-final period handling differs between extractor
		// variants; accept the clean label too.
		edge, ok = result.Graph.Edge("Alice", "Acme")
	}
	require.True(t, ok)
	assert.Contains(t, edge.Preds, "founded")
}

func TestGenerateFromTripletsCoreOnly(t *testing.T) {
	c := newTestClient(t, hashEmbedder{})
	defer c.Close()

	result, err := c.GenerateFromTriplets(context.Background(),
		[]string{"Alice", "Acme"},
		[]types.Triplet{
			{Subject: "Alice", Predicate: "works_at", Object: "Acme"},
			{Subject: "Alice", Predicate: "", Object: "Acme"},
			{Subject: "", Predicate: "rel", Object: "Acme"},
		})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 2, result.Graph.NumNodes())
	edge, ok := result.Graph.Edge("Alice", "Acme")
	require.True(t, ok)
	// An empty predicate is still a predicate; only missing endpoints skip.
	assert.Equal(t, 2, edge.Weight)
}

func TestGenerateDeterministic(t *testing.T) {
	ctx := context.Background()
	doc := "Alice founded Acme. Bob joined Acme. Carol knows Alice."

	first, err := newTestClient(t, hashEmbedder{}).GenerateFromText(ctx, doc)
	require.NoError(t, err)
	second, err := newTestClient(t, hashEmbedder{}).GenerateFromText(ctx, doc)
	require.NoError(t, err)

	assert.Equal(t, first.Representatives, second.Representatives)
	assert.Equal(t, first.Triplets, second.Triplets)
	assert.Equal(t, first.Graph.Edges(), second.Graph.Edges())
	assert.Equal(t, first.Graph.Nodes(), second.Graph.Nodes())
}

func TestGenerateEmbedderFailureAbortsRun(t *testing.T) {
	c := newTestClient(t, failingEmbedder{})
	defer c.Close()

	_, err := c.GenerateFromText(context.Background(), "Alice founded Acme.")
	require.Error(t, err)
	assert.ErrorIs(t, err, embedder.ErrBackendUnavailable)
}

func TestGenerateEmptyDocument(t *testing.T) {
	c := newTestClient(t, hashEmbedder{})
	defer c.Close()

	result, err := c.GenerateFromText(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, result.Graph.NumNodes())
	assert.Empty(t, result.Representatives)
}
