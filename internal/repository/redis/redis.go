// Package redis provides a Redis-backed domain.KeyValueStore.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/msomdec/mini-bank/internal/domain"
)

// Config describes how to reach the Redis server.
type Config struct {
	Address  string
	Password string
	DB       int
	// Prefix namespaces every key written by the store.
	Prefix string
}

// Client owns a go-redis connection and the key prefix of the bank namespace.
type Client struct {
	rdb    *redis.Client
	prefix string
}

// New connects to Redis and verifies the connection with a PING.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("connected to redis", "addr", cfg.Address, "prefix", cfg.Prefix)
	return &Client{rdb: rdb, prefix: cfg.Prefix}, nil
}

// Migrate has no schema to apply; it only checks the server is reachable.
func (c *Client) Migrate(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// Store returns the key-value store over this connection.
func (c *Client) Store() *KeyValueStore {
	return &KeyValueStore{rdb: c.rdb, prefix: c.prefix}
}

// KeyValueStore implements domain.KeyValueStore with plain GET/SET/DEL.
// Values never expire.
type KeyValueStore struct {
	rdb    *redis.Client
	prefix string
}

func (s *KeyValueStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *KeyValueStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
