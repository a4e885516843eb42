package extract

import (
	"context"
	"fmt"
	"sync"

	"github.com/soundprediction/go-rust-bert/pkg/rustbert"

	"github.com/soundprediction/graphgen/pkg/types"
)

// RustBertExtractor extracts entities with a local rust-bert NER model.
// The model is loaded lazily on first use and at most once; the mutex guards
// both the initialization race and the model's single-threaded inference.
type RustBertExtractor struct {
	modelID string
	model   *rustbert.NERModel
	mu      sync.Mutex
}

// NewRustBertExtractor creates an extractor for the given model.
// An empty modelID selects the default BERT-based NER model.
func NewRustBertExtractor(modelID string) *RustBertExtractor {
	return &RustBertExtractor{modelID: modelID}
}

func (e *RustBertExtractor) loadLocked() error {
	if e.model != nil {
		return nil
	}

	if e.modelID != "" {
		modelPath, configPath, vocabPath, mergesPath, err := rustbert.DownloadArtifacts(e.modelID, "")
		if err != nil {
			return fmt.Errorf("failed to download artifacts for %s: %w", e.modelID, err)
		}
		m, err := rustbert.NewNERModelFromFiles(modelPath, configPath, vocabPath, mergesPath, rustbert.ModelTypeBert)
		if err != nil {
			return fmt.Errorf("failed to create NER model %s: %w", e.modelID, err)
		}
		e.model = m
		return nil
	}

	m, err := rustbert.NewNERModel()
	if err != nil {
		return fmt.Errorf("failed to create NER model: %w", err)
	}
	e.model = m
	return nil
}

// Entities runs NER over the sentence.
func (e *RustBertExtractor) Entities(ctx context.Context, sentence string) ([]types.Entity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.loadLocked(); err != nil {
		return nil, err
	}

	results, err := e.model.Predict(sentence)
	if err != nil {
		return nil, fmt.Errorf("NER prediction failed: %w", err)
	}

	entities := make([]types.Entity, len(results))
	for i, r := range results {
		entities[i] = types.Entity{
			Text:  r.Word,
			Label: r.Label,
			Score: r.Score,
		}
	}
	fillSpans(sentence, entities)
	return entities, nil
}

// Close releases the model.
func (e *RustBertExtractor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.model != nil {
		e.model.Close()
		e.model = nil
	}
	return nil
}
