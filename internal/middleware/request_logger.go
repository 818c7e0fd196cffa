package middleware

import (
	"time"

	"image-judge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request with its final status and latency.
// Errors from the chain are rendered here so the logged status is the one sent.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if userID := UserID(c); userID != "" {
			fields = append(fields, zap.String("userID", userID))
		}
		logger.Get().Info("HTTP request", fields...)
		return nil
	}
}
