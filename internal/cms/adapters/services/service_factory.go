// Package services предоставляет реализации сервисов паролей и JWT токенов для CMS.
package services

import (
	"time"

	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/ports/services"
)

// ServiceFactory создает сервисы аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает фабрику сервисов со временем жизни токенов для каждой коллекции.
func NewServiceFactory(secretKey string, adminTTL, appUserTTL time.Duration, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService: NewJWT(secretKey, map[string]time.Duration{
			entities.CollectionAdmins:   adminTTL,
			entities.CollectionAppUsers: appUserTTL,
		}),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
