package pipeline

import (
	"context"
	"sync"
	"time"

	"socdash/internal/logger"
	"socdash/pkg/models"
)

// Recorder batches finished hunts from a runner subscription into a HuntWriter.
// Each execution is queued at most once.
type Recorder struct {
	writer        HuntWriter
	queue         chan *models.HuntTask
	batchSize     int
	flushInterval time.Duration
	retryDelay    time.Duration

	mu     sync.Mutex
	lastID string
}

// NewRecorder creates a recorder for writer.
func NewRecorder(writer HuntWriter, batchSize int, flushInterval time.Duration) *Recorder {
	if batchSize <= 0 {
		batchSize = 50
	}
	if flushInterval <= 0 {
		flushInterval = 2 * time.Second
	}
	return &Recorder{
		writer:        writer,
		queue:         make(chan *models.HuntTask, batchSize*4),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		retryDelay:    time.Second,
	}
}

// Observe is a hunt.Listener. It queues terminal tasks and ignores the rest.
// It never blocks: when the queue is full the task is dropped and logged.
func (r *Recorder) Observe(task *models.HuntTask) {
	if task == nil || !task.Status.Terminal() {
		return
	}
	r.mu.Lock()
	if task.ID == r.lastID {
		r.mu.Unlock()
		return
	}
	r.lastID = task.ID
	r.mu.Unlock()

	select {
	case r.queue <- task:
	default:
		logger.Warnf("Hunt recorder queue full; dropping hunt %s", task.ID)
	}
}

// Run writes queued tasks until ctx is cancelled, then flushes what is left.
func (r *Recorder) Run(ctx context.Context) error {
	logger.Infof("Hunt recorder started")

	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	var batch []*models.HuntTask
	flush := func(retry bool) {
		for len(batch) > 0 {
			err := r.writer.WriteHunts(batch)
			if err == nil {
				batch = nil
				return
			}
			logger.Errorf("Failed to write hunts: %v", err)
			if !retry {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.retryDelay):
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			batch = r.drain(batch)
			flush(false)
			return nil
		case <-ticker.C:
			flush(true)
		case task := <-r.queue:
			batch = append(batch, task)
			if len(batch) >= r.batchSize {
				flush(true)
			}
		}
	}
}

func (r *Recorder) drain(batch []*models.HuntTask) []*models.HuntTask {
	for {
		select {
		case task := <-r.queue:
			batch = append(batch, task)
		default:
			return batch
		}
	}
}

// Close closes the underlying writer.
func (r *Recorder) Close() error {
	if r.writer == nil {
		return nil
	}
	return r.writer.Close()
}
