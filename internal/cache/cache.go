// Package cache stores short-lived serialized read models.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry
type Cache interface {
	// Get returns the cached value and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate removes every key starting with prefix
	Invalidate(ctx context.Context, prefix string) error

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error
}

// Noop is a Cache that never stores anything
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error { return nil }

func (Noop) Invalidate(ctx context.Context, prefix string) error { return nil }

func (Noop) Ping(ctx context.Context) error { return nil }
