package embedder

import (
	"context"
	"errors"
	"fmt"
)

// ErrBackendUnavailable indicates the embedding backend could not serve the
// request. Callers treat this as fatal for the batch; there is no retry.
var ErrBackendUnavailable = errors.New("embedding backend unavailable")

// BackendError wraps a provider failure so callers can distinguish embedding
// backend problems from their own errors.
type BackendError struct {
	Provider string
	Err      error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("embedding backend %s: %v", e.Provider, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Is implements errors.Is support so wrapped backend errors match
// ErrBackendUnavailable.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

// NewBackendError creates a BackendError for the named provider.
func NewBackendError(provider string, err error) *BackendError {
	return &BackendError{Provider: provider, Err: err}
}

// Client defines the interface for embedding providers.
type Client interface {
	// Embed generates embeddings for the given texts in a single batch call.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedSingle generates an embedding for a single text.
	EmbedSingle(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the number of dimensions in the embeddings.
	Dimensions() int

	// Close cleans up any resources.
	Close() error
}

// Config holds common configuration for embedding clients.
type Config struct {
	Model      string `json:"model"`
	BaseURL    string `json:"base_url,omitempty"`
	Dimensions int    `json:"dimensions,omitempty"`
}
