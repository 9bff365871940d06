package huntredis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"socdash/pkg/models"
)

// Config configures the Redis hunt sink.
type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
	MaxLen   int64 // keep only the newest MaxLen entries; 0 keeps everything
	Timeout  time.Duration
}

// Writer pushes finished hunts onto a Redis list.
type Writer struct {
	client  redis.UniversalClient
	key     string
	maxLen  int64
	timeout time.Duration
}

// NewWriter connects to Redis and checks the connection.
func NewWriter(cfg Config) (*Writer, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = "127.0.0.1:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	w, err := NewWriterWithClient(client, cfg)
	if err != nil {
		client.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis hunt sink: %w", err)
	}
	return w, nil
}

// NewWriterWithClient writes through an existing client.
func NewWriterWithClient(client redis.UniversalClient, cfg Config) (*Writer, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		return nil, fmt.Errorf("redis hunt key is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Writer{
		client:  client,
		key:     key,
		maxLen:  cfg.MaxLen,
		timeout: timeout,
	}, nil
}

// WriteHunts appends tasks to the list in one round trip.
func (w *Writer) WriteHunts(tasks []*models.HuntTask) error {
	if len(tasks) == 0 {
		return nil
	}
	values, err := encode(tasks)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	pipe := w.client.TxPipeline()
	pipe.RPush(ctx, w.key, values...)
	if w.maxLen > 0 {
		pipe.LTrim(ctx, w.key, -w.maxLen, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis push hunts: %w", err)
	}
	return nil
}

// Close closes the client.
func (w *Writer) Close() error {
	return w.client.Close()
}

func encode(tasks []*models.HuntTask) ([]interface{}, error) {
	values := make([]interface{}, 0, len(tasks))
	for _, task := range tasks {
		b, err := json.Marshal(task)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal hunt %s: %w", task.ID, err)
		}
		values = append(values, string(b))
	}
	return values, nil
}
