// Package services содержит доменные типы и ошибки сервисов CMS.
package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed login attempts")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrFirstAdminExists   = errors.New("first admin already registered")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// Session - результат успешного входа в коллекцию.
type Session struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"exp"`
	Collection string    `json:"collection"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
}

// Principal - аутентифицированный субъект запроса.
type Principal struct {
	ID         string
	Email      string
	Collection string
}
