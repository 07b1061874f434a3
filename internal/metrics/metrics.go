package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared by the collectors.
const (
	OperationReverse = "reverse"
	OperationForward = "forward"

	StatusSuccess  = "success"
	StatusFailure  = "failure"
	StatusNotFound = "not_found"
	StatusRejected = "rejected"
	StatusInvalid  = "invalid"
)

type Metrics struct {
	Lookups            *prometheus.CounterVec
	APIErrors          *prometheus.CounterVec
	RequestSeconds     *prometheus.HistogramVec
	LimiterWaitSeconds prometheus.Histogram
	QuotesProcessed    *prometheus.CounterVec
	ActiveWorkers      prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_lookups_total",
			Help: "Total number of geocoding lookups by provider, operation and outcome.",
		}, []string{"provider", "operation", "status"}),
		APIErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}, []string{"provider", "operation"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider", "operation"}),
		LimiterWaitSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "geocoding_rate_limiter_wait_seconds",
			Help:    "Time spent waiting for the geocoding rate limiter.",
			Buckets: []float64{0, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		QuotesProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "quotes_processed_total",
			Help: "Total number of processed trip quotes by outcome.",
		}, []string{"status"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "quote_active_workers",
			Help: "Current number of workers busy with a quote.",
		}),
	}
}
