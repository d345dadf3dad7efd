package repositories

import (
	"context"

	"simplylife/internal/cms/domain/entities"
)

// AppUserRepository определяет операции хранения пользователей приложения.
type AppUserRepository interface {
	Create(ctx context.Context, user *entities.AppUser) (*entities.AppUser, error)

	FindByID(ctx context.Context, id string) (*entities.AppUser, error)

	FindByEmail(ctx context.Context, email string) (*entities.AppUser, error)

	FindByResetToken(ctx context.Context, token string) (*entities.AppUser, error)

	List(ctx context.Context, limit, offset int) ([]*entities.AppUser, error)

	Count(ctx context.Context) (int, error)

	Update(ctx context.Context, user *entities.AppUser) (*entities.AppUser, error)

	Delete(ctx context.Context, id string) error
}
