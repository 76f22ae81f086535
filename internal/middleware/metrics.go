package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application-level counters. Request-level metrics (latency, status codes)
// come from the fiberprometheus middleware.
var (
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folio_posts_created_total",
		Help: "Number of posts created through the admin API",
	})

	PostsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folio_posts_deleted_total",
		Help: "Number of posts deleted through the admin API",
	})

	ViewCounterErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_view_counter_errors_total",
		Help: "Best-effort view counter failures, by Redis command",
	}, []string{"command"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
