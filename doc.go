// Package graphgen builds compact, deduplicated knowledge graphs from noisy
// entity mentions and heuristically extracted relation triplets.
//
// The pipeline has two algorithmic stages and a ring of plumbing around them.
// The stages are:
//
//   - Deduplication (pkg/dedup): near-duplicate mention strings are collapsed
//     into canonical representatives using embedding cosine similarity and a
//     greedy, seed-anchored clustering pass.
//   - Aggregation (pkg/graph): relation triplets are folded into a directed
//     graph with one weighted, predicate-annotated edge per ordered node pair.
//
// The plumbing supplies their inputs and consumes their output: sentence
// splitting (pkg/text), entity and relation extraction (pkg/extract),
// embedding providers (pkg/embedder), and file export (pkg/export).
//
// # Usage
//
//	embedClient, err := embedder.NewEmbedEverythingClient(embedder.Config{
//	    Model: "sentence-transformers/all-MiniLM-L6-v2",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	entities := extract.NewHeuristicEntityExtractor()
//	client, err := graphgen.NewClient(
//	    entities,
//	    extract.NewHeuristicRelationExtractor(entities),
//	    dedup.New(embedClient, dedup.WithThreshold(0.8)),
//	    nil,
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.GenerateFromText(ctx, documentText)
//
// Given a deterministic embedding provider, the whole pipeline is a pure
// function of its input text: two runs produce identical graphs, including
// node, edge, and predicate ordering.
package graphgen
