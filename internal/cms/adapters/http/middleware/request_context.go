// Package middleware содержит промежуточное ПО HTTP сервера CMS.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"simplylife/pkg/logger"
)

type localsKey string

// Ключи значений запроса в Locals.
const (
	requestContextKey localsKey = "requestContext"
	principalKey      localsKey = "principal"
)

// NewRequestContextMiddleware присваивает запросу идентификатор и сохраняет контекст с ним.
// Идентификатор берется из X-Request-ID или генерируется.
func NewRequestContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := logger.NewRequestIDContext(c.Context(), c.Get(logger.RequestIDHeader))
		if id, ok := logger.GetRequestID(ctx); ok {
			c.Set(logger.RequestIDHeader, id)
		}
		c.Locals(requestContextKey, ctx)
		return c.Next()
	}
}

// Context возвращает контекст запроса с идентификатором запроса.
func Context(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(requestContextKey).(context.Context); ok {
		return ctx
	}
	return c.Context()
}
