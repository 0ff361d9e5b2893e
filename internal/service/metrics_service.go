package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns a private Prometheus registry for HTTP, cache and domain counters.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	cacheLatency      prometheus.Observer
	cacheWrite        prometheus.Observer
	cacheLookups      *prometheus.CounterVec
	attendanceMarked  prometheus.Counter
	promotionOutcomes *prometheus.CounterVec
	rosterUploaded    prometheus.Counter
	loginAttempts     *prometheus.CounterVec
}

// NewMetricsService registers all collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache writes",
		Buckets: prometheus.DefBuckets,
	})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by result",
	}, []string{"result"})

	attendanceMarked := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_records_marked_total",
		Help: "Attendance rows written by mark-attendance",
	})

	promotionOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promotion_students_total",
		Help: "Students handled by the yearly update, by outcome",
	}, []string{"outcome"})

	rosterUploaded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_students_uploaded_total",
		Help: "Students inserted through roster uploads",
	})

	loginAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Login attempts by role and result",
	}, []string{"role", "result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite, cacheLookups,
		attendanceMarked, promotionOutcomes, rosterUploaded, loginAttempts, goroutines)

	return &MetricsService{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		cacheLatency:      cacheLatency,
		cacheWrite:        cacheWrite,
		cacheLookups:      cacheLookups,
		attendanceMarked:  attendanceMarked,
		promotionOutcomes: promotionOutcomes,
		rosterUploaded:    rosterUploaded,
		loginAttempts:     loginAttempts,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records a cache lookup.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveCacheWrite tracks the duration of cache writes.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// AddAttendanceMarked counts inserted attendance rows.
func (m *MetricsService) AddAttendanceMarked(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.attendanceMarked.Add(float64(n))
}

// RecordPromotion counts one run's outcomes.
func (m *MetricsService) RecordPromotion(promoted, archived, skipped int) {
	if m == nil {
		return
	}
	m.promotionOutcomes.WithLabelValues("promoted").Add(float64(promoted))
	m.promotionOutcomes.WithLabelValues("archived").Add(float64(archived))
	m.promotionOutcomes.WithLabelValues("skipped").Add(float64(skipped))
}

// AddRosterUploaded counts students inserted from roster files.
func (m *MetricsService) AddRosterUploaded(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rosterUploaded.Add(float64(n))
}

// RecordLogin counts a login attempt.
func (m *MetricsService) RecordLogin(role string, ok bool) {
	if m == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	m.loginAttempts.WithLabelValues(role, result).Inc()
}
