package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qbank_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qbank_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	CounterFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qbank_counter_fallbacks_total",
			Help: "Aggregate counter reads answered by an index-scoped scan instead",
		},
		[]string{"reason"},
	)

	CounterInconsistencies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qbank_counter_inconsistencies_total",
			Help: "Aggregate counts that disagreed with a verification recount",
		},
		[]string{"kind"},
	)

	MigrationItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qbank_migration_items_total",
			Help: "Legacy questions visited by the taxonomy backfill",
		},
		[]string{"result"},
	)

	CustomQuizzesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "qbank_custom_quizzes_created_total",
			Help: "Custom quizzes materialized by the sampler",
		},
	)

	HierarchyRebuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qbank_hierarchy_rebuilds_total",
			Help: "Taxonomy hierarchy view rebuilds",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			CounterFallbacks,
			CounterInconsistencies,
			MigrationItems,
			CustomQuizzesCreated,
			HierarchyRebuilds,
		)
	})
}

// Middleware records request count and latency per route template.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		RequestCounter.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the Prometheus exposition format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
