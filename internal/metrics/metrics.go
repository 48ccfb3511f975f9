// Package metrics exposes simulation Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/udisondev/islesim/internal/event"
)

const namespace = "islesim"

// Population is a point-in-time entity count.
type Population struct {
	EnemiesAlive       int
	EnemiesDead        int
	ResourcesAvailable int
	ResourcesDepleted  int
	Drops              int
	PendingRespawns    int
}

// Metrics holds the simulation collectors.
type Metrics struct {
	tickDuration prometheus.Histogram
	ticks        prometheus.Counter
	enemies      *prometheus.GaugeVec
	resources    *prometheus.GaugeVec
	drops        prometheus.Gauge
	pending      prometheus.Gauge
	events       *prometheus.CounterVec
}

// New creates collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one simulation step.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation steps executed.",
		}),
		enemies: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "enemies",
			Help:      "Enemies by liveness.",
		}, []string{"state"}),
		resources: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resources",
			Help:      "Resource nodes by availability.",
		}, []string{"state"}),
		drops: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "drops",
			Help:      "Item stacks lying on the ground.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "respawns_pending",
			Help:      "Running respawn timers.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Published simulation events by type.",
		}, []string{"type"}),
	}

	reg.MustRegister(m.tickDuration, m.ticks, m.enemies, m.resources, m.drops, m.pending, m.events)
	return m
}

// ObserveTick records one step.
func (m *Metrics) ObserveTick(d time.Duration) {
	m.ticks.Inc()
	m.tickDuration.Observe(d.Seconds())
}

// SetPopulation updates the population gauges.
func (m *Metrics) SetPopulation(p Population) {
	m.enemies.WithLabelValues("alive").Set(float64(p.EnemiesAlive))
	m.enemies.WithLabelValues("dead").Set(float64(p.EnemiesDead))
	m.resources.WithLabelValues("available").Set(float64(p.ResourcesAvailable))
	m.resources.WithLabelValues("depleted").Set(float64(p.ResourcesDepleted))
	m.drops.Set(float64(p.Drops))
	m.pending.Set(float64(p.PendingRespawns))
}

// Publisher wraps next and counts every event by type.
func (m *Metrics) Publisher(next event.Publisher) event.Publisher {
	return event.PublisherFunc(func(ev event.Event) {
		m.events.WithLabelValues(ev.Type().String()).Inc()
		if next != nil {
			next.Publish(ev)
		}
	})
}

// Serve exposes g on addr+path until ctx is cancelled.
func Serve(ctx context.Context, addr, path string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("metrics endpoint listening", "addr", addr, "path", path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving metrics: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down metrics server: %w", err)
		}
		return nil
	}
}
