package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Audit emits one structured log line per request.
func Audit(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if err != nil {
			// the error handler has not written the status yet
			status = fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				fe = e
				status = fe.Code
			}
		}

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		}
		if requestID, _ := c.Locals(requestIDHeader).(string); requestID != "" {
			attrs = append(attrs, slog.String("request_id", requestID))
		}

		switch {
		case err == nil:
			logger.Info("request completed", attrs...)
		case fe != nil && fe.Code < fiber.StatusInternalServerError:
			attrs = append(attrs, slog.String("reason", fe.Message))
			logger.Warn("request rejected", attrs...)
		default:
			attrs = append(attrs, slog.Any("error", err))
			logger.Error("request failed", attrs...)
		}
		return err
	}
}
