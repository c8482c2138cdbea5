package tokencache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreFromConfig(t *testing.T) {
	ctx := context.Background()

	store, err := NewStoreFromConfig(ctx, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = NewStoreFromConfig(ctx, &CacheConfig{Type: CacheTypeMemory, SingleFlight: true})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, store)
	assert.NotNil(t, store.(*MemoryStore).group)

	store, err = NewStoreFromConfig(ctx, &CacheConfig{Type: CacheTypeNone})
	require.NoError(t, err)
	assert.IsType(t, &NoOpStore{}, store)

	_, err = NewStoreFromConfig(ctx, &CacheConfig{Type: CacheTypeNATS})
	assert.ErrorIs(t, err, ErrNATSConfigRequired)

	_, err = NewStoreFromConfig(ctx, &CacheConfig{Type: "redis"})
	assert.ErrorIs(t, err, ErrUnsupportedCacheType)
}

func TestCacheBuilder(t *testing.T) {
	store, err := NewCacheBuilder().WithType(CacheTypeMemory).WithSingleFlight().Build(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, store.(*MemoryStore).group)

	_, err = NewCacheBuilder().WithType(CacheTypeNATS).WithNATSConfig(&NATSKVConfig{}).Build(context.Background())
	assert.ErrorIs(t, err, ErrNATSConfigRequired)
}
