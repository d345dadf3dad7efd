package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"simplylife/internal/cms/domain/services"
	"simplylife/internal/cms/ports/api"
	svc "simplylife/internal/cms/ports/services"
	"simplylife/pkg/logger"
)

const msgDatabaseProbeFailed = "database probe failed"

// HealthUseCaseImpl реализует интерфейс HealthUseCase.
type HealthUseCaseImpl struct {
	prober   svc.DatabaseProber
	database string
	region   string
}

// NewHealthUseCase создает проверку задержки базы данных.
// database и region попадают в отчет без изменений.
func NewHealthUseCase(prober svc.DatabaseProber, database, region string) api.HealthUseCase {
	return &HealthUseCaseImpl{prober: prober, database: database, region: region}
}

// DatabaseLatency выполняет пробный запрос и измеряет задержку.
func (h *HealthUseCaseImpl) DatabaseLatency(ctx context.Context) *services.LatencyReport {
	latency, err := h.prober.Probe(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgDatabaseProbeFailed, zap.Error(err))
		return &services.LatencyReport{
			Success: false,
			Latency: formatLatency(latency),
			Error:   err.Error(),
		}
	}

	return &services.LatencyReport{
		Success:  true,
		Latency:  formatLatency(latency),
		Database: h.database,
		Region:   h.region,
	}
}

func formatLatency(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Round(time.Millisecond).Milliseconds())
}
