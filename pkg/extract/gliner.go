package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/soundprediction/go-gline-rs/pkg/gline"

	"github.com/soundprediction/graphgen/pkg/types"
)

// DefaultGlinerLabels are the entity labels requested from GLiNER span
// models when the caller does not configure their own.
var DefaultGlinerLabels = []string{"person", "organization", "location", "product", "event"}

// GlinerExtractor extracts entities and relations with GLiNER models.
// Span extraction implements EntityExtractor; when a relation model is also
// loaded, the extractor implements RelationExtractor too.
type GlinerExtractor struct {
	spanModel     *gline.Model
	relationModel *gline.RelationModel
	labels        []string
	mu            sync.Mutex
}

// NewGlinerExtractor loads a GLiNER span model. modelID may be a local
// directory holding model.onnx and tokenizer.json, or a Hugging Face model
// ID to download.
func NewGlinerExtractor(modelID string, labels []string) (*GlinerExtractor, error) {
	if err := gline.Init(); err != nil {
		return nil, fmt.Errorf("failed to init gline: %w", err)
	}
	if len(labels) == 0 {
		labels = DefaultGlinerLabels
	}

	if _, err := os.Stat(modelID); err == nil {
		m, err := gline.NewSpanModel(
			filepath.Join(modelID, "model.onnx"),
			filepath.Join(modelID, "tokenizer.json"),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load span model from %s: %w", modelID, err)
		}
		return &GlinerExtractor{spanModel: m, labels: labels}, nil
	}

	m, err := gline.NewSpanModelFromHF(modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load span model %s: %w", modelID, err)
	}
	return &GlinerExtractor{spanModel: m, labels: labels}, nil
}

// LoadRelationModel loads a GLiNER relation model so Relations can be used.
func (e *GlinerExtractor) LoadRelationModel(modelID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := os.Stat(modelID); err == nil {
		m, err := gline.NewRelationModel(
			filepath.Join(modelID, "model.onnx"),
			filepath.Join(modelID, "tokenizer.json"),
		)
		if err != nil {
			return fmt.Errorf("failed to load relation model from %s: %w", modelID, err)
		}
		e.relationModel = m
		return nil
	}

	m, err := gline.NewRelationModelFromHF(modelID)
	if err != nil {
		return fmt.Errorf("failed to load relation model %s: %w", modelID, err)
	}
	e.relationModel = m
	return nil
}

// Entities runs span extraction over the sentence.
func (e *GlinerExtractor) Entities(ctx context.Context, sentence string) ([]types.Entity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	results, err := e.spanModel.Predict([]string{sentence}, e.labels)
	if err != nil {
		return nil, fmt.Errorf("span prediction failed: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	var entities []types.Entity
	for _, r := range results[0] {
		entities = append(entities, types.Entity{
			Text:  r.Text,
			Label: r.Label,
			Score: float64(r.Probability),
		})
	}
	fillSpans(sentence, entities)
	return entities, nil
}

// Relations runs relation extraction over the sentence. It requires a loaded
// relation model.
func (e *GlinerExtractor) Relations(ctx context.Context, sentence string) ([]types.Triplet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.relationModel == nil {
		return nil, fmt.Errorf("relation model not loaded")
	}

	results, err := e.relationModel.Predict([]string{sentence}, e.labels)
	if err != nil {
		return nil, fmt.Errorf("relation prediction failed: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	var triplets []types.Triplet
	for _, r := range results[0] {
		triplets = append(triplets, types.Triplet{
			Subject:   r.Source,
			Predicate: r.Relation,
			Object:    r.Target,
		})
	}
	return types.DedupeTriplets(triplets), nil
}

// Close releases the models.
func (e *GlinerExtractor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.spanModel != nil {
		e.spanModel.Close()
		e.spanModel = nil
	}
	if e.relationModel != nil {
		e.relationModel.Close()
		e.relationModel = nil
	}
	return nil
}

// fillSpans assigns character spans by locating each entity text in the
// sentence, scanning left to right so repeated mentions get distinct spans.
func fillSpans(sentence string, entities []types.Entity) {
	cursor := 0
	for i := range entities {
		idx := strings.Index(sentence[cursor:], entities[i].Text)
		if idx < 0 {
			// Fall back to the first occurrence anywhere.
			idx = strings.Index(sentence, entities[i].Text)
			if idx < 0 {
				continue
			}
			entities[i].Start = idx
			entities[i].End = idx + len(entities[i].Text)
			continue
		}
		entities[i].Start = cursor + idx
		entities[i].End = cursor + idx + len(entities[i].Text)
		cursor = entities[i].End
	}
}
