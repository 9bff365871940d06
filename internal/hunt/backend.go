package hunt

import (
	"context"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"socdash/pkg/models"
)

// Backend executes hunt queries.
type Backend interface {
	Search(ctx context.Context, query string) ([]models.HuntResult, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, query string) ([]models.HuntResult, error)

// Search calls f.
func (f BackendFunc) Search(ctx context.Context, query string) ([]models.HuntResult, error) {
	return f(ctx, query)
}

// SimulatedConfig controls the randomness of SimulatedBackend.
type SimulatedConfig struct {
	LatencyMin       time.Duration
	LatencyMax       time.Duration
	EmptyProbability float64 // chance that a hunt finds nothing, in [0,1]
	MaxFallback      int     // upper bound of canned findings when no category matches
	Seed             uint64  // 0 picks a random seed
}

// DefaultSimulatedConfig returns the stock latency and empty-result settings.
func DefaultSimulatedConfig() SimulatedConfig {
	return SimulatedConfig{
		LatencyMin:       1 * time.Second,
		LatencyMax:       4 * time.Second,
		EmptyProbability: 0.2,
		MaxFallback:      3,
	}
}

// SimulatedBackend stands in for a search backend: it waits a random latency,
// matches keyword categories, and otherwise draws from a canned pool.
type SimulatedBackend struct {
	cfg        SimulatedConfig
	classifier Classifier
	fallback   []Template

	mu  sync.Mutex
	rng *rand.Rand

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
	newID func() string
}

// SimulatedOption customizes a SimulatedBackend.
type SimulatedOption func(*SimulatedBackend)

// WithSleep replaces the latency wait.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) SimulatedOption {
	return func(b *SimulatedBackend) { b.sleep = fn }
}

// WithBackendClock replaces the clock used to stamp findings.
func WithBackendClock(now func() time.Time) SimulatedOption {
	return func(b *SimulatedBackend) { b.now = now }
}

// NewSimulatedBackend builds a backend over classifier and the fallback pool.
func NewSimulatedBackend(cfg SimulatedConfig, classifier Classifier, fallback []Template, opts ...SimulatedOption) *SimulatedBackend {
	if cfg.LatencyMin < 0 {
		cfg.LatencyMin = 0
	}
	if cfg.LatencyMax < cfg.LatencyMin {
		cfg.LatencyMax = cfg.LatencyMin
	}
	if cfg.EmptyProbability < 0 {
		cfg.EmptyProbability = 0
	}
	if cfg.EmptyProbability > 1 {
		cfg.EmptyProbability = 1
	}
	if cfg.MaxFallback <= 0 {
		cfg.MaxFallback = 3
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	b := &SimulatedBackend{
		cfg:        cfg,
		classifier: classifier,
		fallback:   fallback,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		sleep:      sleepContext,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Search waits the simulated latency and returns findings for query.
// Category matches are deterministic; the empty-result roll is applied after
// matching and suppresses every finding of that execution.
func (b *SimulatedBackend) Search(ctx context.Context, query string) ([]models.HuntResult, error) {
	if err := b.sleep(ctx, b.latency()); err != nil {
		return nil, err
	}

	var matched []Category
	if b.classifier != nil {
		matched = b.classifier.Classify(query)
	}

	at := b.now()
	results := make([]models.HuntResult, 0, len(matched))
	for _, cat := range matched {
		results = append(results, cat.instantiate(b.newID(), cat.ID, at))
	}
	if len(matched) == 0 {
		for _, tpl := range b.pickFallback() {
			results = append(results, tpl.instantiate(b.newID(), "", at))
		}
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Severity.Weight() > results[j].Severity.Weight()
		})
	}

	if b.rollEmpty() {
		return []models.HuntResult{}, nil
	}
	return results, nil
}

func (b *SimulatedBackend) latency() time.Duration {
	span := b.cfg.LatencyMax - b.cfg.LatencyMin
	if span <= 0 {
		return b.cfg.LatencyMin
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg.LatencyMin + time.Duration(b.rng.Int64N(int64(span)+1))
}

func (b *SimulatedBackend) rollEmpty() bool {
	if b.cfg.EmptyProbability <= 0 {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rng.Float64() < b.cfg.EmptyProbability
}

// pickFallback draws between 1 and MaxFallback distinct templates.
func (b *SimulatedBackend) pickFallback() []Template {
	if len(b.fallback) == 0 {
		return nil
	}
	limit := min(b.cfg.MaxFallback, len(b.fallback))

	b.mu.Lock()
	n := 1 + b.rng.IntN(limit)
	perm := b.rng.Perm(len(b.fallback))
	b.mu.Unlock()

	out := make([]Template, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, b.fallback[idx])
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
