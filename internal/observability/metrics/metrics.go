package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CoachMetrics aggregates the service counters: HTTP traffic plus the
// dialogue-level signals (turn outcomes, retrieval hit rate).
type CoachMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	turnsTotal        *prometheus.CounterVec
	retrievalHitTotal prometheus.Counter
	noContextTotal    prometheus.Counter
	retrievedPassages prometheus.Histogram
	sessionsStarted   prometheus.Counter
	summariesProduced prometheus.Counter
}

func NewCoachMetrics(service string) *CoachMetrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	m := &CoachMetrics{
		registry: registry,
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "coach",
				Subsystem:   "http",
				Name:        "requests_total",
				Help:        "Total HTTP requests processed.",
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   "coach",
				Subsystem:   "http",
				Name:        "request_duration_seconds",
				Help:        "HTTP request duration in seconds.",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method", "path"},
		),
		turnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "coach",
				Subsystem:   "dialogue",
				Name:        "turns_total",
				Help:        "Total processed turns by outcome.",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
		retrievalHitTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "coach",
			Subsystem:   "retrieval",
			Name:        "hit_total",
			Help:        "Turns backed by at least one retrieved passage.",
			ConstLabels: constLabels,
		}),
		noContextTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "coach",
			Subsystem:   "retrieval",
			Name:        "no_context_total",
			Help:        "Turns that fell back to the generic-advice context.",
			ConstLabels: constLabels,
		}),
		retrievedPassages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "coach",
			Subsystem:   "retrieval",
			Name:        "passages_per_turn",
			Help:        "Distribution of retrieved passages per turn.",
			Buckets:     []float64{0, 1, 2, 3, 5},
			ConstLabels: constLabels,
		}),
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "coach",
			Subsystem:   "dialogue",
			Name:        "sessions_started_total",
			Help:        "Total sessions created.",
			ConstLabels: constLabels,
		}),
		summariesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "coach",
			Subsystem:   "dialogue",
			Name:        "summaries_total",
			Help:        "Total final summaries produced.",
			ConstLabels: constLabels,
		}),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.turnsTotal,
		m.retrievalHitTotal,
		m.noContextTotal,
		m.retrievedPassages,
		m.sessionsStarted,
		m.summariesProduced,
	)
	return m
}

func (m *CoachMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *CoachMetrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.requestTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *CoachMetrics) ObserveTurn(outcome string, retrievedPassages int) {
	m.turnsTotal.WithLabelValues(outcome).Inc()
	m.retrievedPassages.Observe(float64(retrievedPassages))
	if retrievedPassages > 0 {
		m.retrievalHitTotal.Inc()
	} else {
		m.noContextTotal.Inc()
	}
}

func (m *CoachMetrics) SessionStarted() {
	m.sessionsStarted.Inc()
}

func (m *CoachMetrics) SummaryProduced() {
	m.summariesProduced.Inc()
}
