package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the correlation id on every response
const RequestIDHeader = "X-Request-ID"

// RequestLogger func - logs one line per request with latency and status
func RequestLogger(logger *logrus.Logger) fiber.Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)

		err := c.Next()
		if c.Method() == fiber.MethodOptions {
			return err
		}

		status := c.Response().StatusCode()
		entry := logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
		})
		switch {
		case err != nil:
			entry.WithError(err).Error("api request")
		case status >= fiber.StatusInternalServerError:
			entry.Error("api request")
		case status >= fiber.StatusBadRequest:
			entry.Warn("api request")
		default:
			entry.Info("api request")
		}
		return err
	}
}
