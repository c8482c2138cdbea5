package tokencache

import (
	"context"
	"fmt"
)

// CacheType represents the type of token cache backend.
type CacheType string

const (
	// CacheTypeMemory keeps tokens in process memory.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS keeps tokens in a NATS JetStream key/value bucket.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone disables caching.
	CacheTypeNone CacheType = "none"
)

// CacheConfig configures the token cache backend.
type CacheConfig struct {
	// Type is the cache backend type
	Type CacheType

	// NATS KV configuration, required for CacheTypeNATS
	NATS *NATSKVConfig

	// SingleFlight shares one refresh between concurrent misses on the memory backend
	SingleFlight bool
}

// DefaultCacheConfig returns the default configuration: an in-memory store.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{Type: CacheTypeMemory}
}

// NewStoreFromConfig creates a token store from configuration.
func NewStoreFromConfig(ctx context.Context, config *CacheConfig) (Store, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory, "":
		var opts []MemoryOption
		if config.SingleFlight {
			opts = append(opts, WithSingleFlight())
		}
		return NewMemoryStore(opts...), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}
		return NewNATSKVStore(ctx, config.NATS)

	case CacheTypeNone:
		return NewNoOpStore(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// CacheBuilder helps build cache configurations.
type CacheBuilder struct {
	config *CacheConfig
}

// NewCacheBuilder creates a new cache builder.
func NewCacheBuilder() *CacheBuilder {
	return &CacheBuilder{config: DefaultCacheConfig()}
}

// WithType sets the cache type.
func (b *CacheBuilder) WithType(cacheType CacheType) *CacheBuilder {
	b.config.Type = cacheType
	return b
}

// WithNATSConfig sets NATS cache configuration.
func (b *CacheBuilder) WithNATSConfig(config *NATSKVConfig) *CacheBuilder {
	b.config.NATS = config
	return b
}

// WithSingleFlight enables refresh deduplication on the memory backend.
func (b *CacheBuilder) WithSingleFlight() *CacheBuilder {
	b.config.SingleFlight = true
	return b
}

// Build creates the store from the configuration.
func (b *CacheBuilder) Build(ctx context.Context) (Store, error) {
	return NewStoreFromConfig(ctx, b.config)
}
