package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johssalinas/backend-accenture/pkg/metrics"
)

const scanBatch = 100

// RedisStore is a Store backed by go-redis.
type RedisStore struct {
	client *redis.Client
}

// Connect dials Redis and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return NewRedisStore(client), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Driver() string { return "redis" }

func (s *RedisStore) Get(ctx context.Context, key string, dest any) bool {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		metrics.CacheMisses.WithLabelValues(s.Driver()).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(s.Driver()).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(s.Driver()).Inc()
	return true
}

// setIfGeneration writes KEYS[1] only while the generation counter in
// KEYS[2] still equals ARGV[2]. ARGV[3] is the TTL in milliseconds, 0 for
// none.
var setIfGeneration = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[2] then
	return 0
end
if ARGV[3] == '0' then
	redis.call('SET', KEYS[1], ARGV[1])
else
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
end
return 1
`)

// genKey sits outside the prefix's "prefix:*" keyspace so Flush never
// deletes it.
func genKey(prefix string) string { return prefix + "#gen" }

func (s *RedisStore) Generation(ctx context.Context, prefix string) (int64, error) {
	gen, err := s.client.Get(ctx, genKey(prefix)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration, gen int64) (bool, error) {
	if isNil(value) {
		return false, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("cache: marshal %s: %w", key, err)
	}

	stored, err := setIfGeneration.Run(ctx, s.client,
		[]string{key, genKey(PrefixOf(key))},
		data, gen, ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("cache: set %s: %w", key, err)
	}
	return stored == 1, nil
}

// Flush deletes every key under prefix, walking the keyspace with SCAN.
func (s *RedisStore) Flush(ctx context.Context, prefix string) error {
	metrics.CacheEvictions.WithLabelValues(prefix).Inc()

	if err := s.client.Incr(ctx, genKey(prefix)).Err(); err != nil {
		return fmt.Errorf("cache: advance %s: %w", prefix, err)
	}

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, prefix+":*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("cache: scan %s: %w", prefix, err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache: flush %s: %w", prefix, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
