package huntredis

import (
	"encoding/json"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socdash/pkg/models"
)

func TestEncodeOneValuePerTask(t *testing.T) {
	values, err := encode([]*models.HuntTask{
		{ID: "h1", Status: models.HuntCompleted, Results: []models.HuntResult{{ID: "r1"}}},
		{ID: "h2", Status: models.HuntFailed, Error: "boom"},
	})
	require.NoError(t, err)
	require.Len(t, values, 2)

	var got models.HuntTask
	require.NoError(t, json.Unmarshal([]byte(values[1].(string)), &got))
	assert.Equal(t, "h2", got.ID)
	assert.Equal(t, "boom", got.Error)
}

func TestNewWriterWithClientValidates(t *testing.T) {
	_, err := NewWriterWithClient(nil, Config{Key: "hunts"})
	assert.Error(t, err)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})
	defer client.Close()
	_, err = NewWriterWithClient(client, Config{Key: "  "})
	assert.Error(t, err)

	w, err := NewWriterWithClient(client, Config{Key: "hunts"})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, w.timeout)
	assert.NoError(t, w.WriteHunts(nil))
}

func TestWriteHuntsSurfacesConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	w, err := NewWriterWithClient(client, Config{Key: "hunts", Timeout: time.Second})
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.WriteHunts([]*models.HuntTask{{ID: "h1"}}))
}
