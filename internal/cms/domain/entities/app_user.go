package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователей приложения.
var (
	ErrAppUserNotFound          = errors.New("app user not found")
	ErrRegistrationCompleted    = errors.New("registration already completed")
	ErrRegistrationEmailChanged = errors.New("registration email does not match invitation")
	ErrRegistrationRoleChanged  = errors.New("registration role does not match invitation")
	ErrEmptyLastname            = errors.New("lastname cannot be empty")
	ErrEmptyRole                = errors.New("role cannot be empty")
)

// Роли и согласия пользователей приложения.
const (
	RoleIndependent = "independent"

	ConsentAccept = "accept"
	ConsentRefuse = "refuse"
)

// AppUser представляет пользователя мобильного приложения.
type AppUser struct {
	ID                    string
	Email                 string
	Role                  string
	Lastname              string
	Firstname             string
	Cabinet               string
	AdressCabinet         string
	Birthday              string
	EntryDate             string
	RGPD                  string
	Phone                 string
	ImagePath             string
	PasswordHash          string
	RegistrationCompleted bool
	ResetToken            string
	ResetTokenExpiresAt   *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ResetTokenValid сообщает, действителен ли токен сброса пароля на момент now.
func (u *AppUser) ResetTokenValid(token string, now time.Time) bool {
	if u.ResetToken == "" || u.ResetToken != token || u.ResetTokenExpiresAt == nil {
		return false
	}
	return now.Before(*u.ResetTokenExpiresAt)
}
