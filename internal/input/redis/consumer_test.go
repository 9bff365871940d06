package redis

import (
	"context"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConsumerRequiresKey(t *testing.T) {
	_, err := NewConsumer(Config{Addr: "127.0.0.1:6379"})
	assert.Error(t, err)
}

func TestNewConsumerDefaults(t *testing.T) {
	c, err := NewConsumer(Config{Key: "feed"})
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "feed", c.Key())
	assert.Equal(t, 5*time.Second, c.blockTimeout)
}

func TestConsumerWithClientLeavesClientOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})
	defer client.Close()

	c, err := NewConsumerWithClient(client, Config{Key: "feed", BlockTimeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, c.Close())
	assert.Equal(t, time.Second, c.blockTimeout)

	_, err = NewConsumerWithClient(nil, Config{Key: "feed"})
	assert.Error(t, err)
}

func TestConsumerPingReportsUnreachableServer(t *testing.T) {
	c, err := NewConsumer(Config{Addr: "127.0.0.1:1", Key: "feed"})
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, c.Ping(ctx))
}
