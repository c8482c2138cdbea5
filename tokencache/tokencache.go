// Package tokencache stores bearer tokens with an expiry so they can be reused across requests.
package tokencache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by backends when a key holds no entry.
	ErrNotFound = errors.New("token not found in cache")

	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS token cache")
	ErrUnsupportedCacheType = errors.New("unsupported token cache type")
)

// RefreshFunc produces a fresh token value when the cache has none.
type RefreshFunc func(ctx context.Context) (string, error)

// Store is a key/value store with expiry. Implementations must write each entry atomically so
// that readers never observe a partially written token.
type Store interface {
	// GetOrRefresh returns the unexpired value stored under key. On a miss it calls refresh,
	// stores the result for ttl and returns it. Refresh errors are returned unchanged and
	// nothing is stored.
	GetOrRefresh(ctx context.Context, key string, ttl time.Duration, refresh RefreshFunc) (string, error)

	// Forget removes key. Removing a missing key is not an error.
	Forget(ctx context.Context, key string) error
}

// CachedToken is a stored token and the moment it stops being valid.
type CachedToken struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the token can still be served at now.
func (t CachedToken) Valid(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// NoOpStore caches nothing. Every call refreshes.
type NoOpStore struct{}

// NewNoOpStore creates a new no-op store.
func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

// GetOrRefresh always calls refresh.
func (s *NoOpStore) GetOrRefresh(ctx context.Context, key string, ttl time.Duration, refresh RefreshFunc) (string, error) {
	return refresh(ctx)
}

// Forget does nothing.
func (s *NoOpStore) Forget(ctx context.Context, key string) error {
	return nil
}
