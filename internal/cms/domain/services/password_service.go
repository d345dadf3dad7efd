package services

import "errors"

// Ошибки паролей коллекций.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("password cannot be empty")
)
