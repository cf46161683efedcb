package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sockshoplabs/storefront-go/pkg/config"
)

const keyNamespace = "sockshop"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisStore keeps the durable slot in Redis, for shells that share a session
// backend instead of a local profile directory.
type RedisStore struct {
	store cmdable
	raw   *redis.Client
}

// NewRedisStore bootstraps a Redis-backed store and verifies connectivity.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.store == nil {
		return nil, errors.New("redis store not initialized")
	}
	raw, err := s.store.Get(ctx, s.buildKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return []byte(raw), nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if s.store == nil {
		return errors.New("redis store not initialized")
	}
	return s.store.Set(ctx, s.buildKey(key), value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if s.store == nil {
		return errors.New("redis store not initialized")
	}
	return s.store.Del(ctx, s.buildKey(key)).Err()
}

// Ping verifies the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if s.store == nil {
		return errors.New("redis store not initialized")
	}
	return s.store.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (s *RedisStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}

func (s *RedisStore) buildKey(key string) string {
	return strings.Join([]string{keyNamespace, key}, ":")
}
