// Package repositories определяет порты хранилища CMS.
package repositories

import (
	"context"

	"simplylife/internal/cms/domain/entities"
)

// AdminRepository определяет операции хранения администраторов.
type AdminRepository interface {
	Create(ctx context.Context, admin *entities.Admin) (*entities.Admin, error)

	FindByID(ctx context.Context, id string) (*entities.Admin, error)

	FindByEmail(ctx context.Context, email string) (*entities.Admin, error)

	FindByAPIKey(ctx context.Context, apiKey string) (*entities.Admin, error)

	List(ctx context.Context, limit, offset int) ([]*entities.Admin, error)

	Count(ctx context.Context) (int, error)

	Update(ctx context.Context, admin *entities.Admin) (*entities.Admin, error)

	Delete(ctx context.Context, id string) error
}
