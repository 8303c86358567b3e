package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	gatherer          prometheus.Gatherer
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	scenarioRuns      prometheus.Counter
	indicatorRuns     prometheus.Counter
	buildingFailures  prometheus.Counter
	nullSubstitutions prometheus.Counter
}

// NewMetrics registers all collectors on a fresh registry-independent
// set. Call once per process.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		gatherer: prometheus.DefaultGatherer,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		scenarioRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scenario_runs_total",
			Help: "Total scenario transformations executed.",
		}),
		indicatorRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indicator_runs_total",
			Help: "Total community indicator computations executed.",
		}),
		buildingFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "building_failures_total",
			Help: "Total buildings that failed during a run.",
		}),
		nullSubstitutions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "series_null_substitutions_total",
			Help: "Total null series entries substituted with zero.",
		}),
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.scenarioRuns,
		m.indicatorRuns,
		m.buildingFailures,
		m.nullSubstitutions,
	)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler records request counts and durations for one route.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Seconds()
		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(duration)
		}
	})
}

// Handler exposes the metrics endpoint for the registry the collectors
// were registered on.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ScenarioRun counts one scenario transformation.
func (m *Metrics) ScenarioRun() {
	if m == nil {
		return
	}
	m.scenarioRuns.Inc()
}

// IndicatorRun counts one community indicator computation.
func (m *Metrics) IndicatorRun() {
	if m == nil {
		return
	}
	m.indicatorRuns.Inc()
}

// BuildingFailures counts buildings that failed during a run.
func (m *Metrics) BuildingFailures(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.buildingFailures.Add(float64(n))
}

// NullSubstitutions counts null series entries repaired to zero.
func (m *Metrics) NullSubstitutions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.nullSubstitutions.Add(float64(n))
}
