package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"msdsapi/internal/logger"
)

// ErrorLocalKey holds the underlying error of a failed request so it can be logged
// without being sent to the client.
const ErrorLocalKey = "request_error"

// Logger writes one structured log line per request with the fields
// request_id, method, path, status, latency (ms) and error when present.
func Logger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "http")

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := statusOf(c, err)
		kv := []any{
			"request_id", c.Locals(RequestIDLocalKey),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", float64(time.Since(start).Microseconds()) / 1000,
		}
		cause := err
		if cause == nil {
			cause, _ = c.Locals(ErrorLocalKey).(error)
		}
		if cause != nil {
			kv = append(kv, "error", cause.Error())
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", kv...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", kv...)
		default:
			log.Info("request", kv...)
		}
		return err
	}
}

// statusOf returns the status the error handler will write for err, or the
// response status when the handler succeeded.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
