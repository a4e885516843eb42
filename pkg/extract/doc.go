// Package extract turns sentences into entity mentions and relation
// triplets.
//
// Two small interfaces, EntityExtractor and RelationExtractor, decouple the
// pipeline from how extraction happens. The built-in heuristic extractors
// need no models: capitalized-phrase matching for entities, and pattern
// matching ("X of Y", subject-verb-object, sequential co-occurrence) for
// relations. Model-backed alternatives wrap go-rust-bert NER, GLiNER span
// models, and OpenAI-compatible chat models.
//
// Extraction quality is explicitly best-effort; the downstream deduplicator
// and aggregator are where correctness guarantees live.
package extract
