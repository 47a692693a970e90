package prometheus

import (
	"net/http"
	"sync"
	"time"

	"property-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Domain metrics
	PropertyOperationsCounter *prometheus.CounterVec
	InquiryOperationsCounter  *prometheus.CounterVec
	MediaOperationsCounter    *prometheus.CounterVec
	CacheLookupsCounter       *prometheus.CounterVec
	EventsPublishedCounter    *prometheus.CounterVec
)

// InitMetrics registers Prometheus metrics with the configured prefix. Only the first call has effect.
func InitMetrics(cfg *config.Config) {
	initOnce.Do(func() {
		prefix := cfg.Metrics.Prefix

		HttpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		)

		HttpRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		AuthAttemptsCounter = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_attempts_total",
				Help: "Total number of authentication attempts",
			},
		)

		AuthSuccessCounter = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_success_total",
				Help: "Total number of successful authentications",
			},
		)

		AuthErrorsCounter = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_errors_total",
				Help: "Total number of authentication errors",
			},
		)

		DbOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		)

		PropertyOperationsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_property_operations_total",
				Help: "Total number of property operations",
			},
			[]string{"operation"},
		)

		InquiryOperationsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_inquiry_operations_total",
				Help: "Total number of inquiry operations",
			},
			[]string{"kind", "operation"},
		)

		MediaOperationsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_media_operations_total",
				Help: "Total number of media store calls by outcome",
			},
			[]string{"operation", "outcome"},
		)

		CacheLookupsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_cache_lookups_total",
				Help: "Total number of listing cache lookups",
			},
			[]string{"result"},
		)

		EventsPublishedCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_events_published_total",
				Help: "Total number of published domain events by outcome",
			},
			[]string{"event", "outcome"},
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records one served request
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if HttpRequestsTotal == nil {
		return
	}
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DbOperationDuration == nil {
			return
		}
		DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordAuthAttempt counts a login attempt and its outcome
func RecordAuthAttempt(success bool) {
	if AuthAttemptsCounter == nil {
		return
	}
	AuthAttemptsCounter.Inc()
	if success {
		AuthSuccessCounter.Inc()
	} else {
		AuthErrorsCounter.Inc()
	}
}

// RecordPropertyOperation increments the counter for property operations
func RecordPropertyOperation(operation string) {
	if PropertyOperationsCounter == nil {
		return
	}
	PropertyOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordInquiryOperation increments the counter for inquiry operations
func RecordInquiryOperation(kind, operation string) {
	if InquiryOperationsCounter == nil {
		return
	}
	InquiryOperationsCounter.WithLabelValues(kind, operation).Inc()
}

// RecordMediaOperation counts a media store call
func RecordMediaOperation(operation string, err error) {
	if MediaOperationsCounter == nil {
		return
	}
	MediaOperationsCounter.WithLabelValues(operation, outcome(err)).Inc()
}

// RecordCacheLookup counts a listing cache hit or miss
func RecordCacheLookup(hit bool) {
	if CacheLookupsCounter == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsCounter.WithLabelValues(result).Inc()
}

// RecordEventPublished counts a published event
func RecordEventPublished(event string, err error) {
	if EventsPublishedCounter == nil {
		return
	}
	EventsPublishedCounter.WithLabelValues(event, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
