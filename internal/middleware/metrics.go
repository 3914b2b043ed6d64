package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rawabit_redis_errors_total",
		Help: "Total number of failed Redis commands",
	}, []string{"command"})

	// ActiveWebSockets is the number of open realtime connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rawabit_active_websockets",
		Help: "Number of open realtime WebSocket connections",
	})

	// ResponsesByLanguage counts responses per negotiated language.
	ResponsesByLanguage = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rawabit_responses_by_language_total",
		Help: "Responses served per negotiated language",
	}, []string{"lang"})
)

var prom *fiberprometheus.FiberPrometheus

// InitMetrics builds the Fiber Prometheus middleware once per process; the
// default registry rejects duplicate collectors.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	if prom == nil {
		prom = fiberprometheus.New(serviceName)
	}
	return prom
}

// MetricsMiddleware records HTTP metrics plus the negotiated response language.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	inner := p.Middleware
	return func(c *fiber.Ctx) error {
		err := inner(c)
		ResponsesByLanguage.WithLabelValues(string(Lang(c))).Inc()
		return err
	}
}
