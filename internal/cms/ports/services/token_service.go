package services

import (
	"context"
	"time"

	"simplylife/internal/cms/domain/services"
)

// TokenService определяет операции с JWT токенами коллекций.
type TokenService interface {
	Generate(ctx context.Context, collection, userID, email string) (string, time.Time, error)

	Validate(ctx context.Context, token string) (*services.JWTClaims, error)
}
