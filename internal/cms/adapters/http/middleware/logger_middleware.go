package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"simplylife/pkg/logger"
)

// HTTPObserver учитывает обработанные запросы.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// NewLoggerMiddleware логирует запросы и передает их длительность в observer, если он задан.
func NewLoggerMiddleware(observer HTTPObserver) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := Context(c)
		start := time.Now()
		method := c.Method()

		log := logger.Log(requestCtx).With(
			zap.String("path", c.Path()),
			zap.String("method", method),
			zap.String("ip", c.IP()),
		)
		log.Debug(requestCtx, "Request started")

		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()
		if err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		if observer != nil {
			observer.ObserveHTTP(method, c.Route().Path, status, latency)
		}

		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}
		if err != nil {
			log.Error(requestCtx, "Request failed", append(fields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, "Request completed", fields...)
		return nil
	}
}
