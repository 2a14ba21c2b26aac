package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-selector-be/internal/entity"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a durable tier keeping the snapshot as one JSON string.
type RedisStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisStore uses key (DefaultStateKey when empty). A zero ttl keeps the
// value forever.
func NewRedisStore(rdb *redis.Client, key string, ttl time.Duration) *RedisStore {
	if key == "" {
		key = DefaultStateKey
	}
	return &RedisStore{rdb: rdb, key: key, ttl: ttl}
}

// NewRedisClient parses url and falls back to treating it as a plain address.
func NewRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	return redis.NewClient(opt)
}

func (s *RedisStore) Name() string { return "redis" }

func (s *RedisStore) Load(ctx context.Context) (*entity.RecencySnapshot, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return decode(data)
}

func (s *RedisStore) Save(ctx context.Context, snap *entity.RecencySnapshot) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
