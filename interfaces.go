package graphgen

import (
	"context"

	"github.com/soundprediction/graphgen/pkg/dedup"
	"github.com/soundprediction/graphgen/pkg/types"
)

// This file defines focused interfaces so consumers can depend on the
// smallest surface that meets their needs.

// Generator produces graphs from documents or prepared inputs.
type Generator interface {
	// GenerateFromText runs the full pipeline over a raw document.
	GenerateFromText(ctx context.Context, document string) (*Result, error)

	// GenerateFromTriplets runs only deduplication, normalization, and
	// aggregation over prepared mentions and triplets.
	GenerateFromTriplets(ctx context.Context, mentions []string, triplets []types.Triplet) (*Result, error)
}

// Deduper exposes the deduplication stage on its own.
type Deduper interface {
	Deduplicate(ctx context.Context, mentions []string) (*dedup.Result, error)
}

// Compile-time checks that Client satisfies the focused interfaces.
var (
	_ Generator = (*Client)(nil)
	_ Deduper   = (*Client)(nil)
)
