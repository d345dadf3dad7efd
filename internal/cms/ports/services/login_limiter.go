package services

import "context"

// LoginLimiter ограничивает количество неудачных попыток входа.
type LoginLimiter interface {
	Locked(ctx context.Context, collection, email string) (bool, error)

	// RegisterFailure учитывает неудачу и возвращает текущее число попыток.
	RegisterFailure(ctx context.Context, collection, email string) (int, error)

	Reset(ctx context.Context, collection, email string) error
}
