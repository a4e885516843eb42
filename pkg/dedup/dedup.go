package dedup

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/soundprediction/graphgen/pkg/embedder"
	"github.com/soundprediction/graphgen/pkg/types"
	"github.com/soundprediction/graphgen/pkg/utils"
)

// DefaultThreshold is the cosine similarity above which two mentions are
// considered the same entity.
const DefaultThreshold = 0.75

// Cluster is a group of mention indices assigned to one seed mention.
// Members are in input order and always include the seed as first element.
type Cluster struct {
	Seed           int    `json:"seed"`
	Members        []int  `json:"members"`
	Representative string `json:"representative"`
}

// Result holds the outcome of one deduplication pass.
type Result struct {
	// Mentions is the input, retained so cluster indices stay meaningful.
	Mentions []string `json:"mentions"`
	// Clusters in seed-first-seen order.
	Clusters []Cluster `json:"clusters"`
	// Representatives, one per cluster, in the same order as Clusters.
	Representatives []string `json:"representatives"`

	canonical map[string]string
}

// Canonical maps a mention to its cluster representative. Mentions that were
// not part of the deduplicated batch are returned unchanged.
func (r *Result) Canonical(mention string) string {
	if rep, ok := r.canonical[mention]; ok {
		return rep
	}
	return mention
}

// NormalizeTriplets rewrites triplet subjects and objects to their canonical
// representatives. Predicates pass through untouched.
func (r *Result) NormalizeTriplets(triplets []types.Triplet) []types.Triplet {
	out := make([]types.Triplet, len(triplets))
	for i, t := range triplets {
		out[i] = types.Triplet{
			Subject:   r.Canonical(t.Subject),
			Predicate: t.Predicate,
			Object:    r.Canonical(t.Object),
		}
	}
	return out
}

// Deduplicator groups near-duplicate mentions via embedding similarity.
// The embedding provider is injected so tests can supply a deterministic fake.
type Deduplicator struct {
	embedder  embedder.Client
	threshold float64
	logger    *slog.Logger
}

// Option configures a Deduplicator.
type Option func(*Deduplicator)

// WithThreshold overrides the similarity threshold. Values are passed through
// unvalidated; choosing a sensible threshold in (0,1] is the caller's job.
func WithThreshold(threshold float64) Option {
	return func(d *Deduplicator) { d.threshold = threshold }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Deduplicator) { d.logger = logger }
}

// New creates a Deduplicator backed by the given embedding client.
func New(client embedder.Client, opts ...Option) *Deduplicator {
	d := &Deduplicator{
		embedder:  client,
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Threshold returns the configured similarity threshold.
func (d *Deduplicator) Threshold() float64 { return d.threshold }

// Close releases the embedding client.
func (d *Deduplicator) Close() error { return d.embedder.Close() }

// Deduplicate clusters the mentions and picks one representative per cluster.
// Mentions are embedded in a single batch call; a provider failure aborts the
// whole batch and surfaces as an error matching embedder.ErrBackendUnavailable.
// Empty input yields an empty result, not an error.
func (d *Deduplicator) Deduplicate(ctx context.Context, mentions []string) (*Result, error) {
	result := &Result{
		Mentions:        mentions,
		Representatives: []string{},
		canonical:       make(map[string]string, len(mentions)),
	}
	if len(mentions) == 0 {
		return result, nil
	}

	embeddings, err := d.embedder.Embed(ctx, mentions)
	if err != nil {
		return nil, fmt.Errorf("failed to embed %d mentions: %w", len(mentions), err)
	}
	if len(embeddings) != len(mentions) {
		return nil, embedder.NewBackendError("dedup",
			fmt.Errorf("got %d embeddings for %d mentions", len(embeddings), len(mentions)))
	}

	normalized := make([][]float32, len(embeddings))
	for i, emb := range embeddings {
		normalized[i] = utils.NormalizeClamped(emb)
	}

	assigned := make([]bool, len(mentions))
	for i := range mentions {
		if assigned[i] {
			continue
		}
		cluster := Cluster{Seed: i, Members: []int{i}}
		assigned[i] = true

		// Similarity is measured against the seed only; members pulled in by
		// the seed do not recruit further mentions for this cluster.
		for j := i + 1; j < len(mentions); j++ {
			if assigned[j] {
				continue
			}
			if utils.DotProduct(normalized[i], normalized[j]) >= d.threshold {
				cluster.Members = append(cluster.Members, j)
				assigned[j] = true
			}
		}

		cluster.Representative = representative(mentions, cluster.Members)
		result.Clusters = append(result.Clusters, cluster)
		result.Representatives = append(result.Representatives, cluster.Representative)
		for _, m := range cluster.Members {
			result.canonical[mentions[m]] = cluster.Representative
		}
	}

	d.logger.Debug("deduplicated mentions",
		"mentions", len(mentions),
		"clusters", len(result.Clusters),
		"threshold", d.threshold)

	return result, nil
}

// representative picks the longest member string, breaking length ties in
// favor of the earliest member. Length is counted in runes, not bytes.
func representative(mentions []string, members []int) string {
	best := mentions[members[0]]
	bestLen := utf8.RuneCountInString(best)
	for _, m := range members[1:] {
		if n := utf8.RuneCountInString(mentions[m]); n > bestLen {
			best = mentions[m]
			bestLen = n
		}
	}
	return best
}
