// Package handlers содержит HTTP обработчики коллекций CMS.
package handlers

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"simplylife/internal/cms/adapters/http/middleware"
	"simplylife/internal/cms/app"
	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/domain/services"
	"simplylife/pkg/i18n"
	"simplylife/pkg/logger"
)

// Сообщения об ошибках.
const (
	ErrorInvalidRequest       = "invalid request"
	ErrorInternal             = "Something went wrong."
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorNotFound             = "The requested resource was not found."
)

// Page - страница списка коллекции.
type Page[T any] struct {
	Docs       []T  `json:"docs"`
	TotalDocs  int  `json:"totalDocs"`
	Limit      int  `json:"limit"`
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNextPage"`
	HasPrev    bool `json:"hasPrevPage"`
}

func newPage[T any](docs []T, total, limit, page int) Page[T] {
	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Page[T]{
		Docs:       docs,
		TotalDocs:  total,
		Limit:      limit,
		Page:       page,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
	}
}

// pageParams читает limit и page из запроса.
func pageParams(c fiber.Ctx) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	page, _ := strconv.Atoi(c.Query("page"))
	return app.NormalizePage(limit, page)
}

// locale выбирает локаль по параметру locale или заголовку Accept-Language.
func locale(c fiber.Ctx) i18n.Locale {
	if q := c.Query("locale"); q != "" {
		return i18n.Parse(q)
	}
	return i18n.Parse(c.Get(fiber.HeaderAcceptLanguage))
}

// pathID возвращает параметр id маршрута в каноническом виде.
// Идентификатор не в формате UUID не может существовать в базе и дает notFound.
func pathID(c fiber.Ctx, notFound error) (string, error) {
	raw := c.Params("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing id %q: %w", raw, notFound)
	}
	return id.String(), nil
}

func sendError(c fiber.Ctx, status int, message string) error {
	if err := c.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendJSON(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// statusFor сопоставляет ошибку сценария коду ответа. Второе значение сообщает,
// можно ли показать текст ошибки клиенту.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyFullname),
		errors.Is(err, entities.ErrEmptyLastname),
		errors.Is(err, entities.ErrEmptyRole),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrInvalidResetToken),
		errors.Is(err, entities.ErrRegistrationEmailChanged),
		errors.Is(err, entities.ErrRegistrationRoleChanged),
		errors.Is(err, entities.ErrSupplierProductNotFound):
		return fiber.StatusBadRequest, true
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized, true
	case errors.Is(err, services.ErrAccountLocked):
		return fiber.StatusLocked, true
	case errors.Is(err, services.ErrFirstAdminExists):
		return fiber.StatusForbidden, true
	case errors.Is(err, entities.ErrAdminNotFound),
		errors.Is(err, entities.ErrAppUserNotFound),
		errors.Is(err, entities.ErrSupplierNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, services.ErrEmailAlreadyExists),
		errors.Is(err, entities.ErrRegistrationCompleted):
		return fiber.StatusConflict, true
	default:
		return fiber.StatusInternalServerError, false
	}
}

// sendUseCaseError отвечает кодом, соответствующим ошибке сценария.
// Ошибки проверки формы возвращаются вместе с ошибками полей.
func sendUseCaseError(c fiber.Ctx, err error) error {
	requestCtx := middleware.Context(c)
	status, public := statusFor(err)

	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return sendJSON(c, status, fiber.Map{
			"error":  services.ErrValidation.Error(),
			"fields": validation.Fields,
		})
	}

	message := ErrorInternal
	if public {
		message = rootMessage(err)
		logger.Log(requestCtx).Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
	} else {
		logger.Log(requestCtx).Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
	}
	return sendError(c, status, message)
}

// publicErrors - ошибки, текст которых отдается клиенту без контекста обертки.
var publicErrors = []error{
	entities.ErrInvalidEmail,
	entities.ErrEmptyFullname,
	entities.ErrEmptyLastname,
	entities.ErrEmptyRole,
	services.ErrInvalidPassword,
	services.ErrInvalidResetToken,
	entities.ErrRegistrationEmailChanged,
	entities.ErrRegistrationRoleChanged,
	entities.ErrSupplierProductNotFound,
	services.ErrInvalidCredentials,
	services.ErrAccountLocked,
	services.ErrUnauthorized,
	services.ErrFirstAdminExists,
	entities.ErrAdminNotFound,
	entities.ErrAppUserNotFound,
	entities.ErrSupplierNotFound,
	services.ErrEmailAlreadyExists,
	entities.ErrRegistrationCompleted,
}

func rootMessage(err error) string {
	for _, target := range publicErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}
