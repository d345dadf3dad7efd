package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"simplylife/internal/cms/domain/services"
	"simplylife/pkg/logger"
)

// Сообщения об ошибках аутентификации.
const (
	ErrorNoAuthHeader = "no authorization header provided"
	ErrorUnauthorized = "You are not allowed to perform this action."
	ErrorForbidden    = "Forbidden"
)

// Authenticator проверяет заголовок Authorization.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*services.Principal, error)
}

// NewAuthMiddleware требует JWT любой коллекции или API-ключ администратора.
func NewAuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := Context(c)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorUnauthorized})
		}

		principal, err := auth.Authenticate(requestCtx, header)
		if err != nil {
			log.Debug(requestCtx, "authentication failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorUnauthorized})
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// RequireCollection пропускает только субъектов указанной коллекции.
func RequireCollection(collection string) fiber.Handler {
	return func(c fiber.Ctx) error {
		principal := Principal(c)
		if principal == nil || principal.Collection != collection {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": ErrorForbidden})
		}
		return c.Next()
	}
}

// Principal возвращает аутентифицированного субъекта запроса или nil.
func Principal(c fiber.Ctx) *services.Principal {
	p, _ := c.Locals(principalKey).(*services.Principal)
	return p
}
