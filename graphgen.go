package graphgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/soundprediction/graphgen/pkg/dedup"
	"github.com/soundprediction/graphgen/pkg/extract"
	"github.com/soundprediction/graphgen/pkg/graph"
	"github.com/soundprediction/graphgen/pkg/text"
	"github.com/soundprediction/graphgen/pkg/types"
)

// ErrNoDeduplicator is returned when a client is constructed without a
// deduplicator.
var ErrNoDeduplicator = errors.New("deduplicator is required")

// ErrNoExtractor is returned when a client is constructed without extractors.
var ErrNoExtractor = errors.New("entity and relation extractors are required")

// Result is the outcome of one generation run.
type Result struct {
	// RunID identifies this run in exports and logs.
	RunID string `json:"run_id"`
	// Graph is the aggregated knowledge graph.
	Graph *graph.Graph `json:"-"`
	// Sentences after cleaning and pronoun resolution.
	Sentences []string `json:"sentences,omitempty"`
	// Mentions in extraction order, order-deduplicated.
	Mentions []string `json:"mentions,omitempty"`
	// Representatives chosen by deduplication, in cluster-seed order.
	Representatives []string `json:"representatives"`
	// Triplets after normalization, before aggregation.
	Triplets []types.Triplet `json:"triplets"`
	// Skipped counts triplets dropped for a missing subject or object.
	Skipped int `json:"skipped"`
}

// Client runs the full text-to-graph pipeline.
type Client struct {
	entities  extract.EntityExtractor
	relations extract.RelationExtractor
	dedup     *dedup.Deduplicator
	logger    *slog.Logger
}

// NewClient creates a pipeline client. The logger may be nil, in which case
// slog.Default() is used.
func NewClient(
	entities extract.EntityExtractor,
	relations extract.RelationExtractor,
	deduplicator *dedup.Deduplicator,
	logger *slog.Logger,
) (*Client, error) {
	if entities == nil || relations == nil {
		return nil, ErrNoExtractor
	}
	if deduplicator == nil {
		return nil, ErrNoDeduplicator
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		entities:  entities,
		relations: relations,
		dedup:     deduplicator,
		logger:    logger,
	}, nil
}

// GenerateFromText runs the whole pipeline over a raw document: sentence
// splitting, pronoun resolution, entity and relation extraction, mention
// deduplication, triplet normalization, and graph aggregation.
func (c *Client) GenerateFromText(ctx context.Context, document string) (*Result, error) {
	sentences := text.SplitSentences(document)

	resolved, err := extract.ResolvePronouns(ctx, sentences, c.entities)
	if err != nil {
		return nil, fmt.Errorf("pronoun resolution failed: %w", err)
	}

	var mentions []string
	var triplets []types.Triplet
	for _, sentence := range resolved {
		ents, err := c.entities.Entities(ctx, sentence)
		if err != nil {
			return nil, fmt.Errorf("entity extraction failed: %w", err)
		}
		mentions = append(mentions, extract.MentionTexts(ents)...)

		rels, err := c.relations.Relations(ctx, sentence)
		if err != nil {
			return nil, fmt.Errorf("relation extraction failed: %w", err)
		}
		triplets = append(triplets, rels...)
	}

	result, err := c.GenerateFromTriplets(ctx, types.DedupeStrings(mentions), triplets)
	if err != nil {
		return nil, err
	}
	result.Sentences = resolved
	return result, nil
}

// GenerateFromTriplets runs only the two core stages: mentions are
// deduplicated, triplet endpoints are rewritten to their representatives, and
// the normalized triplets are folded into a graph. Mention order is
// significant; it determines cluster seeds and therefore the output.
func (c *Client) GenerateFromTriplets(ctx context.Context, mentions []string, triplets []types.Triplet) (*Result, error) {
	dedupResult, err := c.dedup.Deduplicate(ctx, mentions)
	if err != nil {
		return nil, fmt.Errorf("deduplication failed: %w", err)
	}

	normalized := dedupResult.NormalizeTriplets(triplets)
	g := graph.Build(normalized)

	result := &Result{
		RunID:           uuid.New().String(),
		Graph:           g,
		Mentions:        mentions,
		Representatives: dedupResult.Representatives,
		Triplets:        normalized,
		Skipped:         g.Skipped(),
	}

	c.logger.Info("generated graph",
		"run_id", result.RunID,
		"mentions", len(mentions),
		"representatives", len(result.Representatives),
		"triplets", len(normalized),
		"nodes", g.NumNodes(),
		"edges", g.NumEdges(),
		"skipped", g.Skipped())

	return result, nil
}

// Deduplicate exposes the deduplication stage on its own.
func (c *Client) Deduplicate(ctx context.Context, mentions []string) (*dedup.Result, error) {
	return c.dedup.Deduplicate(ctx, mentions)
}

// Close releases extractor and embedding resources.
func (c *Client) Close() error {
	entErr := c.entities.Close()
	relErr := c.relations.Close()
	dedupErr := c.dedup.Close()
	if entErr != nil {
		return entErr
	}
	if relErr != nil {
		return relErr
	}
	return dedupErr
}
