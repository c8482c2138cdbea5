package tokencache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSKVConfig configures a JetStream key/value bucket as a token store shared between processes.
type NATSKVConfig struct {
	URL    string
	Bucket string

	// TTL bounds how long the bucket keeps any entry. Zero keeps entries until they are replaced.
	TTL time.Duration
}

// kvBucket is the part of a key/value bucket the store needs.
type kvBucket interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// NATSKVStore keeps tokens in a JetStream key/value bucket.
type NATSKVStore struct {
	bucket kvBucket
	conn   *nats.Conn
	now    func() time.Time
}

// NewNATSKVStore connects to NATS and opens, or creates, the configured bucket.
func NewNATSKVStore(ctx context.Context, config *NATSKVConfig) (*NATSKVStore, error) {
	if config == nil || config.URL == "" || config.Bucket == "" {
		return nil, ErrNATSConfigRequired
	}

	nc, err := nats.Connect(config.URL, nats.Name("salesforce-apex-client"))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", config.URL, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      config.Bucket,
		Description: "Salesforce bearer tokens",
		TTL:         config.TTL,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("opening key/value bucket %s: %w", config.Bucket, err)
	}

	return &NATSKVStore{bucket: jetStreamBucket{kv: kv}, conn: nc, now: time.Now}, nil
}

func newNATSKVStoreWithBucket(bucket kvBucket, now func() time.Time) *NATSKVStore {
	return &NATSKVStore{bucket: bucket, now: now}
}

// GetOrRefresh returns the stored token for key, refreshing it when it is missing or expired.
// The value and its expiry are written in a single Put.
func (s *NATSKVStore) GetOrRefresh(ctx context.Context, key string, ttl time.Duration, refresh RefreshFunc) (string, error) {
	raw, err := s.bucket.Get(ctx, key)
	switch {
	case err == nil:
		var entry CachedToken
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil && entry.Valid(s.now()) {
			return entry.Value, nil
		}
	case !errors.Is(err, ErrNotFound):
		return "", fmt.Errorf("reading token %s from NATS: %w", key, err)
	}

	value, err := refresh(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(CachedToken{Value: value, ExpiresAt: s.now().Add(ttl)})
	if err != nil {
		return "", err
	}
	if err := s.bucket.Put(ctx, key, payload); err != nil {
		return "", fmt.Errorf("storing token %s in NATS: %w", key, err)
	}
	return value, nil
}

// Forget deletes key from the bucket.
func (s *NATSKVStore) Forget(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("deleting token %s from NATS: %w", key, err)
	}
	return nil
}

// Close drains the NATS connection.
func (s *NATSKVStore) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Drain()
}

// jetStreamBucket adapts jetstream.KeyValue to kvBucket.
type jetStreamBucket struct {
	kv jetstream.KeyValue
}

func (b jetStreamBucket) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := b.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entry.Value(), nil
}

func (b jetStreamBucket) Put(ctx context.Context, key string, value []byte) error {
	_, err := b.kv.Put(ctx, key, value)
	return err
}

func (b jetStreamBucket) Delete(ctx context.Context, key string) error {
	err := b.kv.Delete(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}
