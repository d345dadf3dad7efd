package api

import (
	"context"

	"simplylife/internal/cms/domain/services"
)

// HealthUseCase определяет проверки состояния сервиса.
type HealthUseCase interface {
	DatabaseLatency(ctx context.Context) *services.LatencyReport
}
