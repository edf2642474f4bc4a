// Package metrics exposes the service's Prometheus collectors.
//
// Collectors live on a private registry so tests can build as many Metrics
// values as they need. cmd/app serves the registry on /metrics.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"oliveflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oliveflow"

type Metrics struct {
	registry *prometheus.Registry

	committed     *prometheus.CounterVec
	failures      *prometheus.CounterVec
	notifications *prometheus.CounterVec
	unbalanced    prometheus.Gauge
	httpRequests  *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		committed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregates_committed_total",
			Help:      "Aggregates written by committed transactions, by aggregate type.",
		}, []string{"aggregate"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Failed operations, by operation and error category.",
		}, []string{"operation", "category"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Outbox deliveries, by result.",
		}, []string{"result"}),
		unbalanced: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unbalanced_offers",
			Help:      "Offers whose initial quantity differs from available plus bought at the last audit.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.committed,
		m.failures,
		m.notifications,
		m.unbalanced,
		m.httpRequests,
		m.httpDurations,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// AggregateCommitted counts one aggregate written by a committed transaction.
func (m *Metrics) AggregateCommitted(aggregate string) {
	m.committed.WithLabelValues(aggregate).Inc()
}

// OperationFailed counts a failed operation under the category of err.
func (m *Metrics) OperationFailed(operation string, err error) {
	if err == nil {
		return
	}
	m.failures.WithLabelValues(operation, Category(err)).Inc()
}

func (m *Metrics) NotificationsDelivered(n int) {
	m.notifications.WithLabelValues("delivered").Add(float64(n))
}

func (m *Metrics) NotificationFailed() {
	m.notifications.WithLabelValues("failed").Inc()
}

func (m *Metrics) UnbalancedOffers(n int) {
	m.unbalanced.Set(float64(n))
}

// Middleware records one sample per request under the matched route
// template, so /offers/1 and /offers/2 share a series.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				} else if status == 0 || status == http.StatusOK {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.httpDurations.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Category names the error taxonomy bucket of err.
func Category(err error) string {
	switch {
	case err == nil:
		return "none"
	case errs.IsRetryable(err):
		return "retryable_conflict"
	case errors.Is(err, errs.ErrInsufficientQuantity):
		return "insufficient_quantity"
	case errs.IsConflict(err):
		return "conflict"
	case errors.Is(err, errs.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errs.IsValidation(err):
		return "validation"
	default:
		return "internal"
	}
}

// AggregateName turns a %T rendering such as "*trade.Offer" into the label
// "trade.offer".
func AggregateName(typeName string) string {
	return strings.ToLower(strings.TrimPrefix(typeName, "*"))
}
