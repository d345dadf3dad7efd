package services

import (
	"context"

	"simplylife/internal/cms/domain/services"
)

// Mailer отправляет письма и возвращает идентификатор письма у провайдера.
type Mailer interface {
	Send(ctx context.Context, email *services.Email) (string, error)
}
