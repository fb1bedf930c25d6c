// Package metrics exposes Prometheus collectors for level generation, pours
// and SSH sessions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/watersort/internal/core"
	wcore "github.com/vovakirdan/watersort/internal/games/watersort/core"
)

// Collector holds the game metrics registered on one registry.
// It satisfies the watersort game's Recorder interface.
type Collector struct {
	registry *prometheus.Registry

	levelsGenerated *prometheus.CounterVec
	shuffleDraws    prometheus.Histogram
	shuffleShortage prometheus.Counter
	bottlesBroken   prometheus.Counter

	pours            *prometheus.CounterVec
	bottlesCompleted prometheus.Counter
	levelsFinished   *prometheus.CounterVec
	poursPerLevel    *prometheus.HistogramVec

	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
}

// New creates a collector on a fresh registry, including Go runtime metrics.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)

	return &Collector{
		registry: reg,

		levelsGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "watersort_levels_generated_total",
			Help: "Levels generated by difficulty profile",
		}, []string{"profile"}),

		shuffleDraws: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "watersort_shuffle_draws",
			Help:    "Random draws used per generated level",
			Buckets: prometheus.ExponentialBuckets(8, 2, 10),
		}),

		shuffleShortage: f.NewCounter(prometheus.CounterOpts{
			Name: "watersort_shuffle_short_total",
			Help: "Levels that ran out of draws before reaching the requested shuffle steps",
		}),

		bottlesBroken: f.NewCounter(prometheus.CounterOpts{
			Name: "watersort_perfect_bottles_broken_total",
			Help: "Bottles left full and uniform by the shuffle that had a unit moved off",
		}),

		pours: f.NewCounterVec(prometheus.CounterOpts{
			Name: "watersort_pours_total",
			Help: "Pour attempts by result",
		}, []string{"result"}),

		bottlesCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "watersort_bottles_completed_total",
			Help: "Pours that completed their target bottle",
		}),

		levelsFinished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "watersort_levels_finished_total",
			Help: "Finished levels by profile and outcome",
		}, []string{"profile", "outcome"}),

		poursPerLevel: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "watersort_pours_per_level",
			Help:    "Pours used on a level before it was won or got stuck",
			Buckets: []float64{5, 10, 20, 30, 50, 80, 120},
		}, []string{"outcome"}),

		sessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "watersort_ssh_sessions_active",
			Help: "SSH sessions currently playing",
		}),

		sessionsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "watersort_ssh_sessions_total",
			Help: "SSH sessions started",
		}),
	}
}

// LevelGenerated records generation statistics for a new level.
func (c *Collector) LevelGenerated(lvl *wcore.Level) {
	c.levelsGenerated.WithLabelValues(lvl.Profile.Name).Inc()
	c.shuffleDraws.Observe(float64(lvl.Stats.Draws))
	if lvl.Stats.Accepted < lvl.Stats.Requested {
		c.shuffleShortage.Inc()
	}
	c.bottlesBroken.Add(float64(lvl.Stats.Broken))
}

// Poured records one pour attempt.
func (c *Collector) Poured(res wcore.PourResult, err error) {
	if err != nil {
		c.pours.WithLabelValues("rejected").Inc()
		return
	}
	c.pours.WithLabelValues("ok").Inc()
	if res.Completed {
		c.bottlesCompleted.Inc()
	}
}

// LevelFinished records a won or stuck level.
func (c *Collector) LevelFinished(lvl *wcore.Level, outcome core.Outcome, pours int) {
	c.levelsFinished.WithLabelValues(lvl.Profile.Name, outcome.String()).Inc()
	c.poursPerLevel.WithLabelValues(outcome.String()).Observe(float64(pours))
}

// SessionStarted records a new SSH session.
func (c *Collector) SessionStarted() {
	c.sessionsTotal.Inc()
	c.sessionsActive.Inc()
}

// SessionEnded records the end of an SSH session.
func (c *Collector) SessionEnded() {
	c.sessionsActive.Dec()
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
