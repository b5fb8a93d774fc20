// Package metrics exposes run progress as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gademo/internal/ga"
)

// Metrics holds the collectors for one run, registered on a caller-owned registry.
type Metrics struct {
	generation  prometheus.Gauge
	bestFitness prometheus.Gauge
	meanFitness prometheus.Gauge
	bestEver    prometheus.Gauge
	generations prometheus.Counter
	evaluations prometheus.Counter
	genDuration prometheus.Histogram
}

// New registers the run collectors on reg, labelled with the problem name.
func New(reg prometheus.Registerer, problem string) *Metrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"problem": problem}

	return &Metrics{
		generation: f.NewGauge(prometheus.GaugeOpts{
			Name:        "gademo_generation",
			Help:        "Index of the last evaluated generation",
			ConstLabels: labels,
		}),
		bestFitness: f.NewGauge(prometheus.GaugeOpts{
			Name:        "gademo_generation_best_fitness",
			Help:        "Best fitness of the last evaluated generation",
			ConstLabels: labels,
		}),
		meanFitness: f.NewGauge(prometheus.GaugeOpts{
			Name:        "gademo_generation_mean_fitness",
			Help:        "Mean fitness of the last evaluated generation",
			ConstLabels: labels,
		}),
		bestEver: f.NewGauge(prometheus.GaugeOpts{
			Name:        "gademo_best_ever_fitness",
			Help:        "Best fitness seen in any generation of the run",
			ConstLabels: labels,
		}),
		generations: f.NewCounter(prometheus.CounterOpts{
			Name:        "gademo_generations_total",
			Help:        "Generations evaluated",
			ConstLabels: labels,
		}),
		evaluations: f.NewCounter(prometheus.CounterOpts{
			Name:        "gademo_evaluations_total",
			Help:        "Fitness evaluations performed",
			ConstLabels: labels,
		}),
		genDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:        "gademo_generation_duration_seconds",
			Help:        "Wall time between consecutive generation records",
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
			ConstLabels: labels,
		}),
	}
}

// Observe records one generation. bestEver is the run's best fitness so far.
func (m *Metrics) Observe(gen int, stats ga.Stats, evaluations int, bestEver float64, elapsed time.Duration) {
	m.generation.Set(float64(gen))
	m.bestFitness.Set(stats.Best)
	m.meanFitness.Set(stats.Mean)
	m.bestEver.Set(bestEver)
	m.generations.Inc()
	m.evaluations.Add(float64(evaluations))
	m.genDuration.Observe(elapsed.Seconds())
}

// Serve exposes reg on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, reg *prometheus.Registry, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", "addr", addr)
	return srv
}
