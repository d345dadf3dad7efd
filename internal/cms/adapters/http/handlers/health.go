package handlers

import (
	"github.com/gofiber/fiber/v3"

	"simplylife/internal/cms/adapters/http/middleware"
	"simplylife/internal/cms/ports/api"
)

// HealthHandler отдает проверки состояния сервиса.
type HealthHandler struct {
	health api.HealthUseCase
}

// NewHealthHandler создает обработчик проверок состояния.
func NewHealthHandler(health api.HealthUseCase) *HealthHandler {
	return &HealthHandler{health: health}
}

// DatabaseLatency измеряет задержку пробного запроса к базе данных.
func (h *HealthHandler) DatabaseLatency(c fiber.Ctx) error {
	report := h.health.DatabaseLatency(middleware.Context(c))
	status := fiber.StatusOK
	if !report.Success {
		status = fiber.StatusInternalServerError
	}
	return sendJSON(c, status, report)
}
