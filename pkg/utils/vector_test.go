package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"length mismatch", []float32{1, 0}, []float32{1}, 0},
		{"empty", nil, nil, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestNormalizeClamped(t *testing.T) {
	v := NormalizeClamped([]float32{3, 4})
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)
	assert.InDelta(t, 1.0, Magnitude(v), 1e-6)
}

func TestNormalizeClampedZeroVector(t *testing.T) {
	v := NormalizeClamped([]float32{0, 0, 0})
	assert.Len(t, v, 3)
	for _, x := range v {
		assert.Zero(t, x)
	}
	// A clamped zero vector stays dissimilar to everything.
	assert.InDelta(t, 0, DotProduct(v, []float32{1, 1, 1}), 1e-9)
}

func TestDotProduct(t *testing.T) {
	assert.InDelta(t, 11, DotProduct([]float32{1, 2}, []float32{3, 4}), 1e-9)
	assert.Zero(t, DotProduct([]float32{1}, []float32{1, 2}))
}
