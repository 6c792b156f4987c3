package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// RedisStore keeps sessions in Redis. Keys are namespaced as
// "{prefix}:session:{id}" and expire natively.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisConfig configures the Redis store
type RedisConfig struct {
	Prefix string        // key prefix, default "matchbot"
	TTL    time.Duration // default 60s
}

// NewRedisStore creates a session store backed by Redis
func NewRedisStore(client redis.UniversalClient, cfg RedisConfig) *RedisStore {
	if cfg.Prefix == "" {
		cfg.Prefix = "matchbot"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &RedisStore{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}
}

func (r *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:session:%s", r.prefix, id)
}

// Save stores the session and restarts its expiry
func (r *RedisStore) Save(ctx context.Context, s *model.MatchSession) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Get loads a live session
func (r *RedisStore) Get(ctx context.Context, id string) (*model.MatchSession, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return decode(data)
}

// Delete removes a session
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
