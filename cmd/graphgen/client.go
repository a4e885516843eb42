package graphgen

import (
	"fmt"
	"log/slog"

	"github.com/soundprediction/graphgen"
	"github.com/soundprediction/graphgen/pkg/config"
	"github.com/soundprediction/graphgen/pkg/dedup"
	"github.com/soundprediction/graphgen/pkg/embedder"
	"github.com/soundprediction/graphgen/pkg/extract"
	"github.com/soundprediction/graphgen/pkg/logger"
)

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Format)
}

// newEmbedder builds the configured embedding client, wrapping it in the
// on-disk cache when a cache directory is set.
func newEmbedder(cfg *config.Config, log *slog.Logger) (embedder.Client, error) {
	var client embedder.Client
	var err error

	embedderConfig := embedder.Config{
		Model:   cfg.Embedding.Model,
		BaseURL: cfg.Embedding.BaseURL,
	}

	switch cfg.Embedding.Provider {
	case "openai":
		if cfg.Embedding.APIKey == "" {
			return nil, fmt.Errorf("embedding provider openai requires an API key")
		}
		client = embedder.NewOpenAIEmbedder(cfg.Embedding.APIKey, embedderConfig)
	case "embed-everything", "":
		client, err = embedder.NewEmbedEverythingClient(embedderConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedder: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}

	if cfg.Embedding.CacheDir != "" {
		client, err = embedder.NewCachedClient(client, cfg.Embedding.Model, cfg.Embedding.CacheDir, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open embedding cache: %w", err)
		}
	}
	return client, nil
}

// newEntityExtractor builds the configured entity extractor.
func newEntityExtractor(cfg *config.Config) (extract.EntityExtractor, error) {
	switch cfg.Extraction.EntityProvider {
	case "heuristic", "":
		return extract.NewHeuristicEntityExtractor(), nil
	case "rustbert":
		return extract.NewRustBertExtractor(cfg.Extraction.NERModel), nil
	case "gliner":
		return extract.NewGlinerExtractor(cfg.Extraction.NERModel, cfg.Extraction.GlinerLabels)
	default:
		return nil, fmt.Errorf("unsupported entity provider: %s", cfg.Extraction.EntityProvider)
	}
}

// newRelationExtractor builds the configured relation extractor, reusing the
// entity extractor where the provider needs one.
func newRelationExtractor(cfg *config.Config, entities extract.EntityExtractor, log *slog.Logger) (extract.RelationExtractor, error) {
	var relations extract.RelationExtractor

	switch cfg.Extraction.RelationProvider {
	case "heuristic", "":
		relations = extract.NewHeuristicRelationExtractor(entities)
	case "llm":
		if cfg.Extraction.LLM.APIKey == "" {
			return nil, fmt.Errorf("relation provider llm requires an API key")
		}
		relations = extract.NewLLMRelationExtractor(extract.LLMConfig{
			Model:       cfg.Extraction.LLM.Model,
			APIKey:      cfg.Extraction.LLM.APIKey,
			BaseURL:     cfg.Extraction.LLM.BaseURL,
			Temperature: cfg.Extraction.LLM.Temperature,
		})
	case "gliner":
		gliner, ok := entities.(*extract.GlinerExtractor)
		if !ok {
			var err error
			gliner, err = extract.NewGlinerExtractor(cfg.Extraction.NERModel, cfg.Extraction.GlinerLabels)
			if err != nil {
				return nil, err
			}
		}
		if cfg.Extraction.RelationModel != "" {
			if err := gliner.LoadRelationModel(cfg.Extraction.RelationModel); err != nil {
				return nil, fmt.Errorf("failed to load relation model: %w", err)
			}
		}
		relations = gliner
	default:
		return nil, fmt.Errorf("unsupported relation provider: %s", cfg.Extraction.RelationProvider)
	}

	// Remote providers get a circuit breaker so a flapping backend fails
	// fast instead of stalling every sentence.
	if cfg.Extraction.CircuitBreaker.Enabled {
		relations = extract.NewBreakerRelationExtractor(
			relations,
			cfg.Extraction.CircuitBreaker.BreakerConfig(),
			cfg.Extraction.RelationProvider,
			log,
		)
	}
	return relations, nil
}

// newEngine assembles the full graphgen client from config.
func newEngine(cfg *config.Config, log *slog.Logger) (*graphgen.Client, error) {
	embedderClient, err := newEmbedder(cfg, log)
	if err != nil {
		return nil, err
	}

	entities, err := newEntityExtractor(cfg)
	if err != nil {
		embedderClient.Close()
		return nil, err
	}

	relations, err := newRelationExtractor(cfg, entities, log)
	if err != nil {
		embedderClient.Close()
		entities.Close()
		return nil, err
	}

	deduplicator := dedup.New(embedderClient,
		dedup.WithThreshold(cfg.Dedup.Threshold),
		dedup.WithLogger(log),
	)

	return graphgen.NewClient(entities, relations, deduplicator, log)
}
