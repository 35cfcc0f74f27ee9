// Package metrics provides Prometheus instrumentation for the service.
// Collectors are registered against an injected registerer so tests can use
// a private registry instead of fighting over the process-global one.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service's Prometheus collectors.
type Metrics struct {
	// WordsAdded counts words durably inserted into the word set.
	WordsAdded prometheus.Counter

	// WordsRemoved counts words deleted from the word set.
	WordsRemoved prometheus.Counter

	// StoreOperations observes word store operation latency by operation
	// and outcome.
	StoreOperations *prometheus.HistogramVec

	// HTTPRequests counts HTTP requests by method, path, and status.
	HTTPRequests *prometheus.CounterVec
}

// New creates the service collectors registered against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		WordsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "wordwall_words_added_total",
			Help: "Number of words inserted into the word set.",
		}),
		WordsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "wordwall_words_removed_total",
			Help: "Number of words removed from the word set.",
		}),
		StoreOperations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wordwall_store_operation_duration_seconds",
			Help:    "Word store operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wordwall_http_requests_total",
			Help: "HTTP requests processed, by method, path, and status.",
		}, []string{"method", "path", "status"}),
	}
}

// ObserveStoreOperation records one store call. Use with defer:
//
//	defer m.ObserveStoreOperation("add", time.Now())(err)
func (m *Metrics) ObserveStoreOperation(operation string, start time.Time) func(err error) {
	return func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}

		m.StoreOperations.WithLabelValues(operation, outcome).
			Observe(time.Since(start).Seconds())
	}
}

// Middleware returns gin middleware counting requests. Health endpoints
// under /-/ are skipped to keep cardinality and noise down.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" || len(path) >= 3 && path[:3] == "/-/" {
			return
		}

		m.HTTPRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
