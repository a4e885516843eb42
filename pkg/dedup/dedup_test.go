package dedup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/soundprediction/graphgen/pkg/dedup"
	"github.com/soundprediction/graphgen/pkg/embedder"
	"github.com/soundprediction/graphgen/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder returns a fixed vector per text. Unknown texts get the zero
// vector.
type fakeEmbedder struct {
	vectors map[string][]float32
	dims    int
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := f.vectors[t]
		if !ok {
			v = make([]float32, f.dims)
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embs, err := f.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embs[0], nil
}

func (f *fakeEmbedder) Dimensions() int { return f.dims }
func (f *fakeEmbedder) Close() error    { return nil }

// Unit vectors with cos(A,B)=0.9 and cos(A,C)=cos(B,C)=0.1.
func boundaryVectors() map[string][]float32 {
	return map[string][]float32{
		"A": {1, 0, 0},
		"B": {0.9, 0.4358899, 0},
		"C": {0.1, 0.023, 0.9947},
	}
}

func TestDeduplicateEmptyInput(t *testing.T) {
	d := dedup.New(&fakeEmbedder{dims: 3})
	result, err := d.Deduplicate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Representatives)
	assert.Empty(t, result.Clusters)
}

func TestDeduplicateBackendFailureIsFatal(t *testing.T) {
	d := dedup.New(&fakeEmbedder{err: embedder.NewBackendError("fake", errors.New("model not loaded"))})
	_, err := d.Deduplicate(context.Background(), []string{"Alice"})
	require.Error(t, err)
	assert.ErrorIs(t, err, embedder.ErrBackendUnavailable)
}

func TestDeduplicateThresholdBoundary(t *testing.T) {
	mentions := []string{"A", "B", "C"}

	tests := []struct {
		name      string
		threshold float64
		wantReps  []string
		wantSizes []int
	}{
		{
			name:      "0.8 groups A and B",
			threshold: 0.8,
			wantReps:  []string{"A", "C"},
			wantSizes: []int{2, 1},
		},
		{
			name:      "0.95 keeps singletons",
			threshold: 0.95,
			wantReps:  []string{"A", "B", "C"},
			wantSizes: []int{1, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dedup.New(&fakeEmbedder{vectors: boundaryVectors(), dims: 3},
				dedup.WithThreshold(tt.threshold))
			result, err := d.Deduplicate(context.Background(), mentions)
			require.NoError(t, err)
			assert.Equal(t, tt.wantReps, result.Representatives)
			require.Len(t, result.Clusters, len(tt.wantSizes))
			for i, size := range tt.wantSizes {
				assert.Len(t, result.Clusters[i].Members, size)
			}
		})
	}
}

func TestDeduplicateSeedOnlyNotTransitive(t *testing.T) {
	// cos(A,B) ~ 0.9, cos(B,C) ~ 0.9, cos(A,C) ~ 0.62. With threshold 0.8
	// the seed A absorbs B but not C, and C opens its own cluster even
	// though it is close to B.
	vectors := map[string][]float32{
		"A": {1, 0, 0},
		"B": {0.9, 0.4358899, 0},
		"C": {0.62, 0.7846, 0},
	}
	d := dedup.New(&fakeEmbedder{vectors: vectors, dims: 3}, dedup.WithThreshold(0.8))

	result, err := d.Deduplicate(context.Background(), []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, result.Representatives)
	assert.Equal(t, []int{0, 1}, result.Clusters[0].Members)
	assert.Equal(t, []int{2}, result.Clusters[1].Members)
}

func TestRepresentativeLongestWins(t *testing.T) {
	same := []float32{1, 0, 0}
	d := dedup.New(&fakeEmbedder{
		vectors: map[string][]float32{"Bob": same, "Robert": same, "Bobby": same},
		dims:    3,
	}, dedup.WithThreshold(0.8))

	result, err := d.Deduplicate(context.Background(), []string{"Bob", "Robert", "Bobby"})
	require.NoError(t, err)
	require.Len(t, result.Clusters, 1)
	assert.Equal(t, "Robert", result.Representatives[0])
	assert.Equal(t, "Robert", result.Canonical("Bob"))
	assert.Equal(t, "Robert", result.Canonical("Bobby"))
}

func TestRepresentativeTieFirstEncountered(t *testing.T) {
	same := []float32{0, 1, 0}
	d := dedup.New(&fakeEmbedder{
		vectors: map[string][]float32{"Alpha": same, "Omega": same},
		dims:    3,
	}, dedup.WithThreshold(0.8))

	result, err := d.Deduplicate(context.Background(), []string{"Alpha", "Omega"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha"}, result.Representatives)
}

func TestDeduplicateIdempotent(t *testing.T) {
	d := dedup.New(&fakeEmbedder{vectors: boundaryVectors(), dims: 3},
		dedup.WithThreshold(0.8))
	ctx := context.Background()

	first, err := d.Deduplicate(ctx, []string{"A", "B", "C"})
	require.NoError(t, err)

	second, err := d.Deduplicate(ctx, first.Representatives)
	require.NoError(t, err)
	assert.Equal(t, first.Representatives, second.Representatives)
}

func TestDeduplicateDeterministic(t *testing.T) {
	mentions := []string{"A", "B", "C"}
	ctx := context.Background()

	d1 := dedup.New(&fakeEmbedder{vectors: boundaryVectors(), dims: 3}, dedup.WithThreshold(0.8))
	d2 := dedup.New(&fakeEmbedder{vectors: boundaryVectors(), dims: 3}, dedup.WithThreshold(0.8))

	r1, err := d1.Deduplicate(ctx, mentions)
	require.NoError(t, err)
	r2, err := d2.Deduplicate(ctx, mentions)
	require.NoError(t, err)

	assert.Equal(t, r1.Representatives, r2.Representatives)
	assert.Equal(t, r1.Clusters, r2.Clusters)
}

func TestDeduplicateZeroVectorsStaySingletons(t *testing.T) {
	// Mentions the provider cannot embed come back as zero vectors; the
	// clamped normalization keeps them dissimilar to everything, including
	// each other.
	d := dedup.New(&fakeEmbedder{dims: 3}, dedup.WithThreshold(0.5))
	result, err := d.Deduplicate(context.Background(), []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, result.Representatives)
}

func TestResultNormalizeTriplets(t *testing.T) {
	same := []float32{1, 0, 0}
	d := dedup.New(&fakeEmbedder{
		vectors: map[string][]float32{"Bob": same, "Robert": same},
		dims:    3,
	}, dedup.WithThreshold(0.8))

	result, err := d.Deduplicate(context.Background(), []string{"Bob", "Robert"})
	require.NoError(t, err)

	normalized := result.NormalizeTriplets([]types.Triplet{
		{Subject: "Bob", Predicate: "works_at", Object: "Acme"},
	})
	assert.Equal(t, "Robert", normalized[0].Subject)
	assert.Equal(t, "works_at", normalized[0].Predicate)
	// "Acme" was not in the batch and passes through unchanged.
	assert.Equal(t, "Acme", normalized[0].Object)
}

func TestSubstringNormalizer(t *testing.T) {
	n := dedup.NewSubstringNormalizer([]string{"United States Navy", "Robert Smith"})

	assert.Equal(t, "Robert Smith", n.Canonical("robert smith"))
	assert.Equal(t, "United States Navy", n.Canonical("Navy"))
	assert.Equal(t, "Unknown Person", n.Canonical("Unknown Person"))
	assert.Equal(t, "", n.Canonical(""))

	// First match in list order wins even when both representatives overlap.
	overlapping := dedup.NewSubstringNormalizer([]string{"US Navy", "US Army"})
	assert.Equal(t, "US Navy", overlapping.Canonical("US"))
}
