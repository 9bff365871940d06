// Package instrument exposes store and hunt activity as Prometheus metrics.
package instrument

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"socdash/internal/store"
	"socdash/pkg/models"
)

const namespace = "socdash"

// Collector records dispatched actions and hunt lifecycle events.
// It satisfies both store.Observer and hunt.Observer.
type Collector struct {
	registry *prometheus.Registry

	actions       *prometheus.CounterVec
	huntsStarted  prometheus.Counter
	huntsRejected prometheus.Counter
	huntsDiscard  prometheus.Counter
	huntsFinished *prometheus.CounterVec
	huntDuration  prometheus.Histogram
}

// NewCollector creates a collector registered on its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "actions_dispatched_total",
			Help:      "Actions applied to the state store, by action type.",
		}, []string{"type"}),
		huntsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hunt",
			Name:      "started_total",
			Help:      "Hunt executions started.",
		}),
		huntsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hunt",
			Name:      "rejected_total",
			Help:      "Start requests rejected because a hunt was already running.",
		}),
		huntsDiscard: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hunt",
			Name:      "discarded_total",
			Help:      "Hunt outcomes dropped because the task was cleared first.",
		}),
		huntsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hunt",
			Name:      "finished_total",
			Help:      "Hunt executions that reached a terminal state, by status.",
		}, []string{"status"}),
		huntDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "hunt",
			Name:      "duration_seconds",
			Help:      "Wall time from start to terminal state.",
			Buckets:   []float64{0.5, 1, 2, 3, 4, 5, 10, 30},
		}),
	}
	c.registry.MustRegister(
		c.actions,
		c.huntsStarted,
		c.huntsRejected,
		c.huntsDiscard,
		c.huntsFinished,
		c.huntDuration,
	)
	return c
}

// Registry returns the registry holding every socdash metric.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ActionDispatched implements store.Observer.
func (c *Collector) ActionDispatched(t store.ActionType) {
	c.actions.WithLabelValues(string(t)).Inc()
}

// HuntStarted implements hunt.Observer.
func (c *Collector) HuntStarted() {
	c.huntsStarted.Inc()
}

// HuntRejected implements hunt.Observer.
func (c *Collector) HuntRejected() {
	c.huntsRejected.Inc()
}

// HuntDiscarded implements hunt.Observer.
func (c *Collector) HuntDiscarded() {
	c.huntsDiscard.Inc()
}

// HuntFinished implements hunt.Observer.
func (c *Collector) HuntFinished(status models.HuntStatus, elapsed time.Duration) {
	c.huntsFinished.WithLabelValues(string(status)).Inc()
	c.huntDuration.Observe(elapsed.Seconds())
}
