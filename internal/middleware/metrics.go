package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ModerationDecisions counts dictionary mutations by outcome: applied directly
// or queued for review.
var ModerationDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "medlex_moderation_decisions_total",
		Help: "Dictionary mutations partitioned by routing outcome.",
	},
	[]string{"operation", "outcome"},
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "medlex_redis_errors_total",
		Help: "Redis command errors.",
	},
	[]string{"command"},
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the handler collecting per-request HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
