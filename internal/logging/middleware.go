package logging

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request with the outcome and latency.
func RequestLogger() fiber.Handler {
	log := New("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}
