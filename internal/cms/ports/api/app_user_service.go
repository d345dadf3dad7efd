package api

import (
	"context"

	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/domain/services"
	"simplylife/internal/registration/schema"
	"simplylife/pkg/i18n"
)

// AppUserInput - данные для создания пользователя приложения администратором.
type AppUserInput struct {
	Email     string
	Role      string
	Lastname  string
	Firstname string
	Password  string
}

// AppUserPatch - частичное обновление пользователя приложения.
type AppUserPatch struct {
	Email         *string
	Role          *string
	Lastname      *string
	Firstname     *string
	Cabinet       *string
	AdressCabinet *string
	Birthday      *string
	EntryDate     *string
	RGPD          *string
	Phone         *string
	Password      *string
}

// AppUserUseCase определяет операции коллекции пользователей приложения.
type AppUserUseCase interface {
	Login(ctx context.Context, email, password string) (*services.Session, error)

	// Create создает пользователя и отправляет приглашение завершить регистрацию.
	Create(ctx context.Context, input AppUserInput, locale i18n.Locale) (*entities.AppUser, error)

	Get(ctx context.Context, id string) (*entities.AppUser, error)

	List(ctx context.Context, limit, page int) ([]*entities.AppUser, int, error)

	Update(ctx context.Context, id string, patch AppUserPatch) (*entities.AppUser, error)

	Delete(ctx context.Context, id string) error

	RegistrationProps(ctx context.Context, id string, locale i18n.Locale) (*services.RegistrationProps, error)

	FinishRegistration(ctx context.Context, submission schema.Submission, locale i18n.Locale) (*entities.AppUser, error)

	ForgotPassword(ctx context.Context, email string, locale i18n.Locale) error

	ResetPassword(ctx context.Context, token, password string, locale i18n.Locale) (*services.Session, error)
}
