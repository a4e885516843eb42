package embedder

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"

	badger "github.com/dgraph-io/badger/v4"
)

// CachedClient wraps a Client with an on-disk badger cache keyed by
// (model, text). Only texts missing from the cache are sent to the wrapped
// provider, in a single batch call. Given a deterministic provider the cache
// is transparent: cached and fresh results are identical.
type CachedClient struct {
	client Client
	model  string
	db     *badger.DB
	logger *slog.Logger
}

// NewCachedClient opens (or creates) a badger database at dir and returns a
// caching wrapper around client. The model name is part of every cache key so
// one cache directory can serve multiple models.
func NewCachedClient(client Client, model, dir string, logger *slog.Logger) (*CachedClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	return &CachedClient{
		client: client,
		model:  model,
		db:     db,
		logger: logger,
	}, nil
}

func (c *CachedClient) cacheKey(text string) []byte {
	sum := sha256.Sum256([]byte(c.model + "\x00" + text))
	return sum[:]
}

// Embed returns embeddings for texts, serving cache hits from badger and
// fetching only the misses from the wrapped provider.
func (c *CachedClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	results := make([][]float32, len(texts))
	var missing []int

	err := c.db.View(func(txn *badger.Txn) error {
		for i, text := range texts {
			item, err := txn.Get(c.cacheKey(text))
			if errors.Is(err, badger.ErrKeyNotFound) {
				missing = append(missing, i)
				continue
			}
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			results[i] = decodeVector(val)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("embedding cache read: %w", err)
	}

	if len(missing) == 0 {
		return results, nil
	}

	batch := make([]string, len(missing))
	for i, idx := range missing {
		batch[i] = texts[idx]
	}

	fresh, err := c.client.Embed(ctx, batch)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(batch) {
		return nil, NewBackendError("cache", fmt.Errorf("provider returned %d embeddings for %d texts", len(fresh), len(batch)))
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		for i, idx := range missing {
			results[idx] = fresh[i]
			if err := txn.Set(c.cacheKey(texts[idx]), encodeVector(fresh[i])); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Cache write failures are not fatal; the embeddings are already in hand.
		c.logger.Warn("embedding cache write failed", "error", err)
		for i, idx := range missing {
			results[idx] = fresh[i]
		}
	}

	return results, nil
}

// EmbedSingle generates an embedding for a single text.
func (c *CachedClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// Dimensions returns the number of dimensions in the embeddings.
func (c *CachedClient) Dimensions() int {
	return c.client.Dimensions()
}

// Close closes the cache database and the wrapped client.
func (c *CachedClient) Close() error {
	dbErr := c.db.Close()
	clientErr := c.client.Close()
	if dbErr != nil {
		return dbErr
	}
	return clientErr
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return v
}
