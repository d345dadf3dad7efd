package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"simplylife/internal/cms/domain/services"
	svc "simplylife/internal/cms/ports/services"
	"simplylife/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerate     = "Generate"
	methodValidate     = "Validate"
	msgGeneratingToken = "generating token"
	msgValidatingToken = "validating token"
	msgTokenGenerated  = "token generated successfully"
	msgTokenValidated  = "token validated successfully"
	msgInvalidToken    = "invalid token format"
	msgTokenExpired    = "token has expired"
	msgEmptySecret     = "empty secret key provided"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
)

// Ошибки JWT сервиса.
var (
	ErrInvalidAlgorithm  = errors.New("invalid signing algorithm")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID     string `json:"id"`
	Email      string `json:"email"`
	Collection string `json:"collection"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	config services.JWTConfig
	now    func() time.Time
}

// NewJWT создает новый экземпляр сервиса JWT. ttl задает время жизни токена для каждой коллекции.
func NewJWT(secretKey string, ttl map[string]time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey: []byte(secretKey),
			TTL:       ttl,
		},
		now: time.Now,
	}
}

func domainToJWTClaims(claims services.JWTClaims) Claims {
	return Claims{
		UserID:     claims.UserID,
		Email:      claims.Email,
		Collection: claims.Collection,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			Subject:   claims.UserID,
		},
	}
}

func jwtToDomainClaims(claims Claims) services.JWTClaims {
	var expiresAt, issuedAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return services.JWTClaims{
		UserID:     claims.UserID,
		Email:      claims.Email,
		Collection: claims.Collection,
		ExpiresAt:  expiresAt,
		IssuedAt:   issuedAt,
	}
}

// Generate генерирует токен коллекции со временем жизни этой коллекции.
func (s *ServiceJWT) Generate(ctx context.Context, collection, userID, email string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerate),
		zap.String("collection", collection),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	ttl, ok := s.config.TTL[collection]
	if !ok {
		return "", time.Time{}, fmt.Errorf("%s: %w: %w: %s", errCtxGeneratingToken, services.ErrGeneratingJWTToken, ErrUnknownCollection, collection)
	}

	now := s.now()
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(services.JWTClaims{
		UserID:     userID,
		Email:      email,
		Collection: collection,
		IssuedAt:   now,
		ExpiresAt:  expiresAt,
	}))

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// Validate проверяет токен и возвращает его claims.
func (s *ServiceJWT) Validate(ctx context.Context, tokenString string) (*services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidate))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	if _, known := s.config.TTL[claims.Collection]; !known {
		log.Debug(ctx, msgInvalidToken, zap.String("collection", claims.Collection))
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingToken, services.ErrInvalidJWTToken, ErrUnknownCollection)
	}

	domain := jwtToDomainClaims(*claims)
	log.Debug(ctx, msgTokenValidated, zap.String("userID", domain.UserID))
	return &domain, nil
}
