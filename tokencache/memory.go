package tokencache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// MemoryStore keeps tokens in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]CachedToken
	now     func() time.Time

	// group is set when concurrent misses for the same key should share one refresh.
	group *singleflight.Group
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithSingleFlight makes concurrent misses on the same key wait for a single refresh call.
func WithSingleFlight() MemoryOption {
	return func(s *MemoryStore) {
		s.group = &singleflight.Group{}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]CachedToken),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrRefresh returns the cached value for key, refreshing it on a miss or after expiry.
func (s *MemoryStore) GetOrRefresh(ctx context.Context, key string, ttl time.Duration, refresh RefreshFunc) (string, error) {
	if value, ok := s.lookup(key); ok {
		return value, nil
	}

	if s.group == nil {
		return s.refreshAndStore(ctx, key, ttl, refresh)
	}

	// The shared refresh is not bound to the cancellation of the caller that started it.
	sharedCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have stored a value while this one waited.
		if value, ok := s.lookup(key); ok {
			return value, nil
		}
		return s.refreshAndStore(sharedCtx, key, ttl, refresh)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Forget removes key from the store.
func (s *MemoryStore) Forget(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) lookup(key string) (string, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !entry.Valid(s.now()) {
		return "", false
	}
	return entry.Value, true
}

func (s *MemoryStore) refreshAndStore(ctx context.Context, key string, ttl time.Duration, refresh RefreshFunc) (string, error) {
	value, err := refresh(ctx)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.entries[key] = CachedToken{Value: value, ExpiresAt: s.now().Add(ttl)}
	s.mu.Unlock()

	return value, nil
}
