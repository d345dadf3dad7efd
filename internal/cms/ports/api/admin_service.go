// Package api определяет основные порты сценариев CMS.
package api

import (
	"context"

	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/domain/services"
)

// AdminInput - данные для создания администратора.
type AdminInput struct {
	Email     string
	Fullname  string
	Password  string
	UseAPIKey bool
}

// AdminPatch - частичное обновление администратора.
type AdminPatch struct {
	Email     *string
	Fullname  *string
	Password  *string
	UseAPIKey *bool
}

// AdminUseCase определяет операции коллекции администраторов.
type AdminUseCase interface {
	Login(ctx context.Context, email, password string) (*services.Session, error)

	RegisterFirst(ctx context.Context, input AdminInput) (*entities.Admin, error)

	Create(ctx context.Context, input AdminInput) (*entities.Admin, error)

	Get(ctx context.Context, id string) (*entities.Admin, error)

	List(ctx context.Context, limit, page int) ([]*entities.Admin, int, error)

	Update(ctx context.Context, id string, patch AdminPatch) (*entities.Admin, error)

	Delete(ctx context.Context, id string) error

	// Authenticate проверяет заголовок Authorization: JWT любой коллекции или API-ключ администратора.
	Authenticate(ctx context.Context, authorization string) (*services.Principal, error)
}
