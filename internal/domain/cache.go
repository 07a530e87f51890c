package domain

import (
	"context"
	"time"
)

// CacheError is a sentinel reported by cache-backed ports.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

const (
	ErrCacheMiss = CacheError("cache: key not found")
	// ErrCounterMiss means the namespace has no authoritative aggregate yet.
	ErrCounterMiss = CacheError("counter: namespace not initialized")
)

// Cache is the key/value port used for the hierarchy view, the migration
// cursor and mirrored migration status.
type Cache interface {
	// Get returns ErrCacheMiss for a missing key.
	Get(ctx context.Context, key string) (string, error)
	// Set with a zero expiration keeps the value until it is overwritten.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete ignores missing keys.
	Delete(ctx context.Context, key string) error

	// HGetAll returns ErrCacheMiss for a missing or empty hash.
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	// HSetAll writes every field and resets the hash expiration.
	HSetAll(ctx context.Context, key string, values map[string]string, expiration time.Duration) error
}
