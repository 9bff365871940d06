package hunt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"socdash/internal/logger"
	"socdash/pkg/models"
)

// Observer is told about hunt lifecycle events.
type Observer interface {
	HuntStarted()
	HuntRejected()
	HuntFinished(status models.HuntStatus, elapsed time.Duration)
	HuntDiscarded()
}

// Listener receives a copy of the current task after each transition.
// A nil task means the runner is idle.
type Listener func(task *models.HuntTask)

// Runner owns at most one hunt task and drives it from running to a terminal state.
type Runner struct {
	backend Backend

	mu        sync.Mutex
	current   *models.HuntTask
	listeners map[int]Listener
	nextID    int

	// pending is guarded by mu; notifyMu serializes its delivery.
	pending  []notification
	notifyMu sync.Mutex

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	now      func() time.Time
	newID    func() string
	observer Observer
	log      *logger.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock replaces the clock used for start and end times.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithIDGenerator replaces the execution id generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) { r.newID = fn }
}

// WithObserver reports lifecycle events to o.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observer = o }
}

// WithLogger sets the runner logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// NewRunner creates an idle runner executing hunts on backend.
func NewRunner(backend Backend, opts ...Option) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		backend:   backend,
		listeners: make(map[int]Listener),
		ctx:       ctx,
		cancel:    cancel,
		now:       time.Now,
		newID:     uuid.NewString,
		log:       logger.Default().With("hunt"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins a hunt for query unless one is already running.
// It returns a copy of the current task and whether a new execution was started.
// A rejected call leaves the running task untouched.
func (r *Runner) Start(query string) (*models.HuntTask, bool) {
	r.mu.Lock()
	if r.current != nil && r.current.Status == models.HuntRunning {
		snap := r.current.Clone()
		r.mu.Unlock()
		r.log.Debugf("Hunt %s still running; rejected query %q", snap.ID, query)
		if r.observer != nil {
			r.observer.HuntRejected()
		}
		return snap, false
	}

	task := &models.HuntTask{
		ID:        r.newID(),
		Query:     query,
		Status:    models.HuntRunning,
		StartTime: r.now(),
		Results:   []models.HuntResult{},
	}
	r.current = task
	r.wg.Add(1)
	snap := task.Clone()
	r.publishLocked(snap)

	r.log.Infof("Hunt %s started: %q", task.ID, query)
	if r.observer != nil {
		r.observer.HuntStarted()
	}
	go r.execute(task.ID, query, task.StartTime)
	return snap.Clone(), true
}

// ClearResults discards the current task and returns the runner to idle.
// A lookup still in flight finishes, but its outcome is dropped.
func (r *Runner) ClearResults() {
	r.mu.Lock()
	if r.current == nil {
		r.mu.Unlock()
		return
	}
	r.log.Debugf("Hunt %s cleared (%s)", r.current.ID, r.current.Status)
	r.current = nil
	r.publishLocked(nil)
}

// Current returns a copy of the current task, or nil when idle.
func (r *Runner) Current() *models.HuntTask {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Clone()
}

// IsRunning reports whether a hunt is in flight.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current != nil && r.current.Status == models.HuntRunning
}

// Subscribe registers fn for task transitions and returns a function that removes it.
// Listeners may read the runner but must not call Start or ClearResults.
func (r *Runner) Subscribe(fn Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Wait blocks until every started lookup has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Close abandons in-flight lookups and waits for them to return.
func (r *Runner) Close() error {
	r.cancel()
	r.wg.Wait()
	return nil
}

func (r *Runner) execute(id, query string, started time.Time) {
	defer r.wg.Done()

	results, err := r.lookup(query)
	end := r.now()

	r.mu.Lock()
	if r.current == nil || r.current.ID != id {
		r.mu.Unlock()
		r.log.Debugf("Hunt %s finished after being cleared; result dropped", id)
		if r.observer != nil {
			r.observer.HuntDiscarded()
		}
		return
	}

	next := r.current.Clone()
	next.EndTime = &end
	if err != nil {
		next.Status = models.HuntFailed
		next.Error = err.Error()
		next.Results = []models.HuntResult{}
	} else {
		next.Status = models.HuntCompleted
		next.ExecutionTime = end.Sub(started).Seconds()
		if results == nil {
			results = []models.HuntResult{}
		}
		next.Results = results
	}
	r.current = next
	r.publishLocked(next.Clone())

	if err != nil {
		r.log.Warnf("Hunt %s failed: %v", id, err)
	} else {
		r.log.Infof("Hunt %s completed: %d results in %.2fs", id, len(next.Results), next.ExecutionTime)
	}
	if r.observer != nil {
		r.observer.HuntFinished(next.Status, end.Sub(started))
	}
}

// lookup calls the backend, turning a panic into an error.
func (r *Runner) lookup(query string) (results []models.HuntResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("hunt backend panic: %v", rec)
			results = nil
		}
	}()
	if r.backend == nil {
		return nil, fmt.Errorf("no hunt backend configured")
	}
	return r.backend.Search(r.ctx, query)
}

// notification is one transition waiting to be delivered.
type notification struct {
	task      *models.HuntTask
	listeners []Listener
}

// publishLocked queues task for the current listeners, releases mu and
// delivers every queued transition in order. The caller must hold mu.
func (r *Runner) publishLocked(task *models.HuntTask) {
	listeners := make([]Listener, 0, len(r.listeners))
	for id := 0; id < r.nextID; id++ {
		if fn, ok := r.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	r.pending = append(r.pending, notification{task: task, listeners: listeners})
	r.mu.Unlock()
	r.deliver()
}

// deliver drains the pending queue. notifyMu is never requested while mu is
// held, so listeners may read runner state.
func (r *Runner) deliver() {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	for {
		r.mu.Lock()
		if len(r.pending) == 0 {
			r.mu.Unlock()
			return
		}
		n := r.pending[0]
		r.pending[0] = notification{}
		r.pending = r.pending[1:]
		r.mu.Unlock()

		for _, fn := range n.listeners {
			if n.task == nil {
				fn(nil)
				continue
			}
			fn(n.task.Clone())
		}
	}
}
