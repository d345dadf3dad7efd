package services

import (
	"errors"
	"fmt"
	"strings"

	"simplylife/internal/registration/schema"
)

// ErrValidation - ошибка проверки данных формы.
var ErrValidation = errors.New("validation failed")

// ValidationError содержит ошибки полей формы.
type ValidationError struct {
	Fields schema.Errors
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Fields.Fields(), ", "))
}

// Unwrap позволяет сравнивать ошибку с ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// RegistrationProps - параметры страницы завершения регистрации.
type RegistrationProps struct {
	Email     string `json:"email"`
	ID        string `json:"id"`
	Role      string `json:"role"`
	ServerURL string `json:"serverURL"`
	Locale    string `json:"locale"`
}

// LatencyReport - результат проверки задержки базы данных.
type LatencyReport struct {
	Success  bool   `json:"success"`
	Latency  string `json:"latency"`
	Database string `json:"database,omitempty"`
	Region   string `json:"region,omitempty"`
	Error    string `json:"error,omitempty"`
}
