package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/okian/ghostboard/internal/domain/model"
	"github.com/okian/ghostboard/pkg/metrics"
)

const (
	defaultKeyPrefix = "ghostboard:profile:"
	defaultRedisTTL  = 5 * time.Minute
)

// RedisStore is a Store shared between replicas.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed profile store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: defaultKeyPrefix,
		ttl:    defaultRedisTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + userID
}

// Get reads and decodes a cached profile.
func (s *RedisStore) Get(ctx context.Context, userID string) (model.Profile, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheRequest("miss")
		return model.Profile{}, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	if err != nil {
		metrics.RecordCacheRequest("error")
		return model.Profile{}, fmt.Errorf("%w: get %s: %v", ErrCacheBackend, userID, err)
	}

	var p model.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		metrics.RecordCacheRequest("error")
		return model.Profile{}, fmt.Errorf("%w: decode %s: %v", ErrCacheBackend, userID, err)
	}
	metrics.RecordCacheRequest("hit")
	return p, nil
}

// Put encodes the profile and stores it with the configured TTL.
func (s *RedisStore) Put(ctx context.Context, p model.Profile) error {
	if p.UserID == "" {
		return ErrInvalidKey
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrCacheBackend, p.UserID, err)
	}
	if err := s.client.Set(ctx, s.key(p.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCacheBackend, p.UserID, err)
	}
	return nil
}

// Count scans the key namespace. Errors count as zero.
func (s *RedisStore) Count(ctx context.Context) int {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 500).Result()
		if err != nil {
			return 0
		}
		total += len(keys)
		if next == 0 {
			break
		}
		cursor = next
	}
	metrics.UpdateCacheEntries(total)
	return total
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
