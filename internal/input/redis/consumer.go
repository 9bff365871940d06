// Package redis reads dashboard refresh envelopes from a Redis list.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Config configures the Redis consumer.
type Config struct {
	Addr         string
	Password     string
	DB           int
	Key          string
	BlockTimeout time.Duration
}

// Consumer pops messages off a Redis list with BLPOP.
type Consumer struct {
	client       redis.UniversalClient
	key          string
	blockTimeout time.Duration
	owned        bool
}

// NewConsumer creates a Redis consumer for list-based queues.
func NewConsumer(cfg Config) (*Consumer, error) {
	cfg, err := normalize(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Consumer{
		client:       client,
		key:          cfg.Key,
		blockTimeout: cfg.BlockTimeout,
		owned:        true,
	}, nil
}

// NewConsumerWithClient reads cfg.Key through an existing client.
// Close leaves the client open.
func NewConsumerWithClient(client redis.UniversalClient, cfg Config) (*Consumer, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	cfg, err := normalize(cfg)
	if err != nil {
		return nil, err
	}
	return &Consumer{
		client:       client,
		key:          cfg.Key,
		blockTimeout: cfg.BlockTimeout,
	}, nil
}

func normalize(cfg Config) (Config, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:6379"
	}
	if cfg.Key == "" {
		return cfg, fmt.Errorf("redis key is required")
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 5 * time.Second
	}
	return cfg, nil
}

// Key returns the list the consumer reads from.
func (c *Consumer) Key() string {
	return c.key
}

// Ping checks the connection.
func (c *Consumer) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Pop pops one message from the list. It returns nil, nil when the block
// timeout elapses without a message.
func (c *Consumer) Pop(ctx context.Context) ([]byte, error) {
	res, err := c.client.BLPop(ctx, c.blockTimeout, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}

// Close closes the consumer.
func (c *Consumer) Close() error {
	if !c.owned {
		return nil
	}
	return c.client.Close()
}
