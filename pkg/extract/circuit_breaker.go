package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/soundprediction/graphgen/pkg/types"
)

// BreakerConfig holds circuit breaker settings for remote extractors.
type BreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// BreakerRelationExtractor wraps a RelationExtractor with a circuit breaker
// so a failing remote extractor (typically the LLM one) fails fast instead of
// hammering a dead endpoint for every sentence.
type BreakerRelationExtractor struct {
	extractor RelationExtractor
	cb        *gobreaker.CircuitBreaker
}

// NewBreakerRelationExtractor wraps extractor with circuit breaking.
func NewBreakerRelationExtractor(extractor RelationExtractor, cfg BreakerConfig, name string, logger *slog.Logger) *BreakerRelationExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ReadyToTripRatio == 0 {
		cfg.ReadyToTripRatio = 0.6
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerRelationExtractor{
		extractor: extractor,
		cb:        gobreaker.NewCircuitBreaker(st),
	}
}

// Relations implements RelationExtractor.
func (b *BreakerRelationExtractor) Relations(ctx context.Context, sentence string) ([]types.Triplet, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.extractor.Relations(ctx, sentence)
	})
	if err != nil {
		return nil, err
	}
	return result.([]types.Triplet), nil
}

// Close implements RelationExtractor.
func (b *BreakerRelationExtractor) Close() error {
	return b.extractor.Close()
}
