package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tssk/internal/catalog"
	"tssk/internal/pipeline"
)

const namespace = "tssk"

// Metrics holds the gauges describing one classification run. They live in a
// private registry because the process exits after each run; the values
// reach Prometheus through a node-exporter textfile.
type Metrics struct {
	registry *prometheus.Registry

	CategoryShows     *prometheus.GaugeVec
	SkippedShows      *prometheus.GaugeVec
	SeriesTotal       prometheus.Gauge
	EpisodesTotal     prometheus.Gauge
	StatusCacheHits   prometheus.Gauge
	StatusCacheMisses prometheus.Gauge
	RunDuration       prometheus.Gauge
	LastRun           prometheus.Gauge
}

// New creates and registers the run gauges.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CategoryShows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "category_shows",
			Help:      "Series reported in each category by the last run.",
		}, []string{"category"}),
		SkippedShows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "skipped_shows",
			Help:      "Candidates demoted to the skipped list, per category.",
		}, []string{"category"}),
		SeriesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "series_total",
			Help:      "Series returned by Sonarr.",
		}),
		EpisodesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "episodes_total",
			Help:      "Episodes returned by Sonarr across all series.",
		}),
		StatusCacheHits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "status_cache",
			Name:      "hits",
			Help:      "TMDB status lookups answered from the cache.",
		}),
		StatusCacheMisses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "status_cache",
			Name:      "misses",
			Help:      "TMDB status lookups that went to TMDB.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}

	m.registry.MustRegister(
		m.CategoryShows,
		m.SkippedShows,
		m.SeriesTotal,
		m.EpisodesTotal,
		m.StatusCacheHits,
		m.StatusCacheMisses,
		m.RunDuration,
		m.LastRun,
	)
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSnapshot records the size of the fetched catalog.
func (m *Metrics) ObserveSnapshot(snap *catalog.Snapshot) {
	if snap == nil {
		return
	}
	m.SeriesTotal.Set(float64(len(snap.Series)))
	m.EpisodesTotal.Set(float64(snap.EpisodeCount()))
}

// ObserveResult sets the category gauges. Every category is written, so an
// emptied category drops to zero instead of keeping a stale value.
func (m *Metrics) ObserveResult(result *pipeline.Result) {
	for _, category := range catalog.Categories() {
		var shows, skipped int
		if result != nil {
			shows = len(result.For(category))
			skipped = len(result.SkippedFor(category))
		}
		m.CategoryShows.WithLabelValues(string(category)).Set(float64(shows))
		m.SkippedShows.WithLabelValues(string(category)).Set(float64(skipped))
	}
}

// ObserveStatusCache records cache effectiveness for the run.
func (m *Metrics) ObserveStatusCache(hits, misses int64) {
	m.StatusCacheHits.Set(float64(hits))
	m.StatusCacheMisses.Set(float64(misses))
}

// ObserveRun records run timing.
func (m *Metrics) ObserveRun(started, finished time.Time) {
	m.RunDuration.Set(finished.Sub(started).Seconds())
	m.LastRun.Set(float64(finished.Unix()))
}

// WriteTextfile writes every gauge to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
