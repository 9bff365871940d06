package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socdash/internal/hunt"
	"socdash/pkg/models"
)

type memoryWriter struct {
	mu      sync.Mutex
	batches [][]*models.HuntTask
	fail    int
	closed  bool
}

func (w *memoryWriter) WriteHunts(tasks []*models.HuntTask) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail > 0 {
		w.fail--
		return errors.New("sink unavailable")
	}
	w.batches = append(w.batches, append([]*models.HuntTask(nil), tasks...))
	return nil
}

func (w *memoryWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *memoryWriter) ids() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []string
	for _, b := range w.batches {
		for _, task := range b {
			out = append(out, task.ID)
		}
	}
	return out
}

func task(id string, status models.HuntStatus) *models.HuntTask {
	return &models.HuntTask{ID: id, Status: status, Results: []models.HuntResult{}}
}

func TestRecorderObserveFiltersAndDedupes(t *testing.T) {
	r := NewRecorder(&memoryWriter{}, 10, time.Hour)

	r.Observe(nil)
	r.Observe(task("h1", models.HuntRunning))
	r.Observe(task("h1", models.HuntCompleted))
	r.Observe(task("h1", models.HuntCompleted))
	r.Observe(task("h2", models.HuntFailed))

	require.Len(t, r.queue, 2)
	assert.Equal(t, "h1", (<-r.queue).ID)
	assert.Equal(t, "h2", (<-r.queue).ID)
}

func TestRecorderFlushesOnBatchSizeAndShutdown(t *testing.T) {
	w := &memoryWriter{}
	r := NewRecorder(w, 2, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	r.Observe(task("h1", models.HuntCompleted))
	r.Observe(task("h2", models.HuntCompleted))
	require.Eventually(t, func() bool { return len(w.ids()) == 2 }, 2*time.Second, 5*time.Millisecond)

	r.Observe(task("h3", models.HuntFailed))
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, []string{"h1", "h2", "h3"}, w.ids())

	require.NoError(t, r.Close())
	assert.True(t, w.closed)
}

func TestRecorderRetriesFailedWrites(t *testing.T) {
	w := &memoryWriter{fail: 2}
	r := NewRecorder(w, 1, time.Hour)
	r.retryDelay = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	r.Observe(task("h1", models.HuntCompleted))
	require.Eventually(t, func() bool { return len(w.ids()) == 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestRecorderFollowsRunner(t *testing.T) {
	w := &memoryWriter{}
	rec := NewRecorder(w, 1, time.Hour)
	runner := hunt.NewRunner(hunt.BackendFunc(func(context.Context, string) ([]models.HuntResult, error) {
		return []models.HuntResult{{ID: "r1", Title: "finding"}}, nil
	}))
	defer runner.Close()
	runner.Subscribe(rec.Observe)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rec.Run(ctx) }()

	first, ok := runner.Start("lateral movement")
	require.True(t, ok)
	runner.Wait()
	runner.ClearResults()

	require.Eventually(t, func() bool { return len(w.ids()) == 1 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, []string{first.ID}, w.ids())
	assert.Equal(t, models.HuntCompleted, w.batches[0][0].Status)
	assert.Len(t, w.batches[0][0].Results, 1)
}
