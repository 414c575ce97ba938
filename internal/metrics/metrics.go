// Package metrics exposes Prometheus collectors for the composer.
package metrics

import (
	"github.com/alkime/blogsmith/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blogsmith"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// GenerationsTotal counts generation outcomes: started, completed,
	// failed, discarded.
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "generations_total",
			Help:      "Total number of generation transitions by tone and outcome",
		},
		[]string{"tone", "outcome"},
	)

	WordCount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "word_count",
			Help:      "Word count of generated posts",
			Buckets:   []float64{25, 50, 75, 100, 150, 200, 300},
		},
		[]string{"tone"},
	)

	CopiesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "copies_total",
			Help:      "Total number of clipboard copies",
		},
	)

	DownloadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "downloads_total",
			Help:      "Total number of downloads",
		},
	)

	ResetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "resets_total",
			Help:      "Total number of session resets",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Current number of live sessions",
		},
	)
)

// Observe updates the session collectors for one event.
func Observe(ev session.Event) {
	toneID := ev.Snapshot.Tone.String()

	switch ev.Kind {
	case session.EventGenerationStarted:
		GenerationsTotal.WithLabelValues(toneID, "started").Inc()
	case session.EventGenerationCompleted:
		GenerationsTotal.WithLabelValues(toneID, "completed").Inc()
		if a := ev.Snapshot.Artifact; a != nil {
			WordCount.WithLabelValues(a.Tone.String()).Observe(float64(a.WordCount))
		}
	case session.EventGenerationFailed:
		GenerationsTotal.WithLabelValues(toneID, "failed").Inc()
	case session.EventGenerationDiscarded:
		GenerationsTotal.WithLabelValues(toneID, "discarded").Inc()
	case session.EventCopied:
		CopiesTotal.Inc()
	case session.EventDownloaded:
		DownloadsTotal.Inc()
	case session.EventReset:
		ResetsTotal.Inc()
	case session.EventCopyExpired:
	}
}
