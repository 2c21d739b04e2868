package providers

import (
	"swiperank/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(namespace string)
	IncCacheMisses(namespace string)
	ObservePersistenceDuration(duration time.Duration)
	IncPersistenceFailures(operation string)
	IncSwipes(direction string)
	SetUsersInMemory(count int)
	SetCatalogSize(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	persistenceFailures *prometheus.CounterVec
	swipesTotal         *prometheus.CounterVec
	usersInMemory       prometheus.Gauge
	catalogSize         prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(namespace string) {
	m.cacheHits.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) IncCacheMisses(namespace string) {
	m.cacheMisses.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPersistenceFailures(operation string) {
	m.persistenceFailures.WithLabelValues(operation).Inc()
}

func (m *MetricsProvider) IncSwipes(direction string) {
	m.swipesTotal.WithLabelValues(direction).Inc()
}

func (m *MetricsProvider) SetUsersInMemory(count int) {
	m.usersInMemory.Set(float64(count))
}

func (m *MetricsProvider) SetCatalogSize(count int) {
	m.catalogSize.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swiperank_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swiperank_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swiperank_cache_hits_total",
			Help: "Response cache hits by namespace",
		}, []string{"namespace"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swiperank_cache_misses_total",
			Help: "Response cache misses by namespace",
		}, []string{"namespace"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "swiperank_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swiperank_persistence_failures_total",
			Help: "Failed writes to the durable store",
		}, []string{"operation"}),

		swipesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swiperank_swipes_total",
			Help: "Swipes that changed user state",
		}, []string{"direction"}),

		usersInMemory: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "swiperank_users_in_memory",
			Help: "Number of user states currently held in memory",
		}),

		catalogSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "swiperank_catalog_products",
			Help: "Number of products in the loaded catalog",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                             {}
func (n *noopMetrics) IncCacheMisses(_ string)                           {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncPersistenceFailures(_ string)                  {}
func (n *noopMetrics) IncSwipes(_ string)                               {}
func (n *noopMetrics) SetUsersInMemory(_ int)                           {}
func (n *noopMetrics) SetCatalogSize(_ int)                             {}
