package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// VisitorLocalKey is the fiber local holding the visitor id.
const VisitorLocalKey = "visitorID"

// RequestLogger logs each request and records its metrics. It must run
// outside the error middleware so the status reflects the rendered error.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		route := utils.CopyString(c.Route().Path)
		method := utils.CopyString(c.Method())
		status := c.Response().StatusCode()
		metrics.RecordRequest(route, method, status, duration)

		visitor, _ := c.Locals(VisitorLocalKey).(string)
		logger.Info("request",
			zap.String("method", method),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", duration),
			zap.String("visitor_id", visitor),
		)
		return err
	}
}
