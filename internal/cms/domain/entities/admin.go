// Package entities содержит сущности домена CMS.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена администраторов.
var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrEmptyFullname = errors.New("fullname cannot be empty")
	ErrInvalidEmail  = errors.New("invalid email format")
)

// Имена коллекций.
const (
	CollectionAdmins   = "admins"
	CollectionAppUsers = "app-users"
)

// Admin представляет администратора панели управления.
type Admin struct {
	ID           string
	Email        string
	Fullname     string
	PasswordHash string
	APIKey       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
