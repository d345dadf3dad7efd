package services

import (
	"context"

	"simplylife/internal/cms/domain/services"
)

// ImageStore сохраняет изображения профиля.
type ImageStore interface {
	// Save сохраняет изображение под ключом и возвращает публичный путь.
	Save(ctx context.Context, key string, image services.Image) (string, error)

	Delete(ctx context.Context, path string) error
}
