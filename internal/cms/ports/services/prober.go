package services

import (
	"context"
	"time"
)

// DatabaseProber выполняет пробный запрос к базе данных.
type DatabaseProber interface {
	Probe(ctx context.Context) (time.Duration, error)
}
