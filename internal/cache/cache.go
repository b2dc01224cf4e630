// Package cache provides the optional read cache in front of the product
// catalogue.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache. A miss is (nil, nil), never an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Noop is the cache used when Redis is disabled: every read misses and
// writes vanish.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, nil
}

func (Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (Noop) Delete(ctx context.Context, key string) error {
	return nil
}
