package embedder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/soundprediction/graphgen/pkg/embedder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns canned embeddings and counts calls.
type fakeClient struct {
	vectors map[string][]float32
	calls   int
	err     error
}

func (f *fakeClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vectors[t]
	}
	return out, nil
}

func (f *fakeClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embs, err := f.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embs[0], nil
}

func (f *fakeClient) Dimensions() int { return 3 }
func (f *fakeClient) Close() error    { return nil }

func TestNewOpenAIEmbedder(t *testing.T) {
	tests := []struct {
		name     string
		config   embedder.Config
		wantDims int
	}{
		{
			name:     "default model",
			config:   embedder.Config{},
			wantDims: 1536,
		},
		{
			name:     "large model dimensions",
			config:   embedder.Config{Model: "text-embedding-3-large"},
			wantDims: 3072,
		},
		{
			name:     "explicit dimensions win",
			config:   embedder.Config{Model: "text-embedding-3-large", Dimensions: 256},
			wantDims: 256,
		},
		{
			name:     "custom base URL",
			config:   embedder.Config{Model: "text-embedding-ada-002", BaseURL: "https://api.example.com/v1"},
			wantDims: 1536,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := embedder.NewOpenAIEmbedder("test-api-key", tt.config)
			require.NotNil(t, client)
			assert.Equal(t, tt.wantDims, client.Dimensions())
		})
	}
}

func TestEmbedderInterface(t *testing.T) {
	var _ embedder.Client = (*embedder.OpenAIEmbedder)(nil)
	var _ embedder.Client = (*embedder.EmbedEverythingClient)(nil)
	var _ embedder.Client = (*embedder.CachedClient)(nil)
}

func TestBackendErrorIs(t *testing.T) {
	err := embedder.NewBackendError("openai", errors.New("connection refused"))
	assert.ErrorIs(t, err, embedder.ErrBackendUnavailable)
	assert.Contains(t, err.Error(), "openai")

	wrapped := errors.Join(errors.New("outer"), err)
	assert.ErrorIs(t, wrapped, embedder.ErrBackendUnavailable)
}

func TestCachedClientBatchesMisses(t *testing.T) {
	fake := &fakeClient{vectors: map[string][]float32{
		"alice": {1, 0, 0},
		"bob":   {0, 1, 0},
	}}

	cached, err := embedder.NewCachedClient(fake, "test-model", t.TempDir(), nil)
	require.NoError(t, err)
	defer cached.Close()

	ctx := context.Background()

	first, err := cached.Embed(ctx, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, []float32{1, 0, 0}, first[0])
	assert.Equal(t, []float32{0, 1, 0}, first[1])

	// Second call is fully served from the cache.
	second, err := cached.Embed(ctx, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, first, second)
}

func TestCachedClientPropagatesBackendError(t *testing.T) {
	fake := &fakeClient{err: embedder.NewBackendError("fake", errors.New("down"))}

	cached, err := embedder.NewCachedClient(fake, "test-model", t.TempDir(), nil)
	require.NoError(t, err)
	defer cached.Close()

	_, err = cached.Embed(context.Background(), []string{"alice"})
	assert.ErrorIs(t, err, embedder.ErrBackendUnavailable)
}

func TestCachedClientEmptyInput(t *testing.T) {
	fake := &fakeClient{}

	cached, err := embedder.NewCachedClient(fake, "test-model", t.TempDir(), nil)
	require.NoError(t, err)
	defer cached.Close()

	out, err := cached.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, fake.calls)
}
