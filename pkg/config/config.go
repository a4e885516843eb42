// Package config loads application configuration from files, flags, and
// environment variables via viper.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/soundprediction/graphgen/pkg/extract"
)

// Config holds all configuration for the application.
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Embedding configuration
	Embedding EmbeddingConfig `mapstructure:"embedding" yaml:"embedding"`

	// Dedup configuration
	Dedup DedupConfig `mapstructure:"dedup" yaml:"dedup"`

	// Extraction configuration
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction"`

	// Export configuration
	Export ExportConfig `mapstructure:"export" yaml:"export"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
	Mode string `mapstructure:"mode" yaml:"mode"` // gin mode: debug, release, test
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider string `mapstructure:"provider" yaml:"provider"` // openai, embed-everything
	Model    string `mapstructure:"model" yaml:"model"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"`
	// CacheDir enables the on-disk embedding cache when non-empty.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`
}

// DedupConfig holds deduplication configuration.
type DedupConfig struct {
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
}

// ExtractionConfig holds entity and relation extraction configuration.
type ExtractionConfig struct {
	// EntityProvider selects the entity extractor: heuristic, rustbert, gliner.
	EntityProvider string `mapstructure:"entity_provider" yaml:"entity_provider"`
	// RelationProvider selects the relation extractor: heuristic, llm, gliner.
	RelationProvider string `mapstructure:"relation_provider" yaml:"relation_provider"`
	// NERModel is the model ID for rustbert or gliner providers.
	NERModel string `mapstructure:"ner_model" yaml:"ner_model"`
	// RelationModel is the GLiNER relation model ID, when used.
	RelationModel string `mapstructure:"relation_model" yaml:"relation_model"`
	// GlinerLabels overrides the default entity labels for GLiNER.
	GlinerLabels []string `mapstructure:"gliner_labels" yaml:"gliner_labels"`

	// LLM settings for the llm relation provider.
	LLM LLMConfig `mapstructure:"llm" yaml:"llm"`

	// CircuitBreaker guards the llm relation provider.
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker" yaml:"circuit_breaker"`
}

// LLMConfig holds LLM client configuration.
type LLMConfig struct {
	Model       string  `mapstructure:"model" yaml:"model"`
	APIKey      string  `mapstructure:"api_key" yaml:"api_key"`
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url"`
	Temperature float32 `mapstructure:"temperature" yaml:"temperature"`
}

// CircuitBreakerConfig holds circuit breaker configuration.
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled" yaml:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests" yaml:"max_requests"`
	Interval         int     `mapstructure:"interval" yaml:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout" yaml:"timeout"`   // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio" yaml:"ready_to_trip_ratio"`
}

// ExportConfig holds export configuration.
type ExportConfig struct {
	Dir     string   `mapstructure:"dir" yaml:"dir"`
	Formats []string `mapstructure:"formats" yaml:"formats"` // json, csv, parquet
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
			Mode: "release",
		},
		Embedding: EmbeddingConfig{
			Provider: "embed-everything",
			Model:    "sentence-transformers/all-MiniLM-L6-v2",
		},
		Dedup: DedupConfig{
			Threshold: 0.8,
		},
		Extraction: ExtractionConfig{
			EntityProvider:   "heuristic",
			RelationProvider: "heuristic",
			CircuitBreaker: CircuitBreakerConfig{
				MaxRequests:      1,
				Interval:         60,
				Timeout:          30,
				ReadyToTripRatio: 0.6,
			},
		},
		Export: ExportConfig{
			Dir:     "out",
			Formats: []string{"json"},
		},
	}
}

// Load reads configuration from viper, applying defaults for unset keys.
// Call after viper.ReadInConfig (the CLI does this in its cobra init).
func Load() (*Config, error) {
	cfg := Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// BreakerConfig converts to the extract package's breaker settings.
func (c CircuitBreakerConfig) BreakerConfig() extract.BreakerConfig {
	return extract.BreakerConfig{
		MaxRequests:      c.MaxRequests,
		Interval:         c.Interval,
		Timeout:          c.Timeout,
		ReadyToTripRatio: c.ReadyToTripRatio,
	}
}

// WriteDefault writes the default configuration as YAML to path, refusing to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
