package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SwapTransitions counts swap request status transitions.
	SwapTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transitions_total",
		Help: "Total swap request status transitions by target status",
	}, []string{"status"})

	// BadgesAwarded counts achievement badges awarded, by badge name.
	BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_badges_awarded_total",
		Help: "Total achievement badges awarded",
	}, []string{"badge"})

	// FeedbackSubmitted counts feedback submissions by star rating.
	FeedbackSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_feedback_submitted_total",
		Help: "Total feedback submissions by rating",
	}, []string{"rating"})

	// ActiveWebSockets is the gauge of currently open notification sockets.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skillswap_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// WebSocketDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_websocket_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
