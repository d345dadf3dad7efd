// Package app содержит сценарии использования CMS.
package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"simplylife/internal/cms/domain/services"
	svc "simplylife/internal/cms/ports/services"
	"simplylife/pkg/logger"
)

const (
	msgLoginAttempt        = "login attempt"
	msgLoginLocked         = "login rejected, account locked"
	msgLoginUnknownEmail   = "login attempt with non-existent email"
	msgLoginWrongPassword  = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgLimiterUnavailable  = "login limiter unavailable"
	msgErrFindingAccount   = "error finding account by email"
	msgErrVerifyingPasswd  = "error verifying password"
	msgErrGeneratingTokens = "failed to generate token"

	errCtxCheckingLock       = "checking lock"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingAccount     = "finding account"
	errCtxVerifyingPassword  = "verifying password"
	errCtxGeneratingToken    = "generating token"
)

// account - данные, необходимые для входа в коллекцию.
type account struct {
	id           string
	email        string
	passwordHash string
}

// accountFinder ищет учетную запись по email и возвращает nil, если ее нет.
type accountFinder func(ctx context.Context, email string) (*account, error)

// sessionIssuer выполняет вход в коллекцию с учетом блокировки после неудачных попыток.
type sessionIssuer struct {
	collection  string
	limiter     svc.LoginLimiter
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	metrics     svc.Metrics
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// login проверяет пароль и выдает токен коллекции.
// Ошибка хранилища попыток не блокирует вход.
func (s *sessionIssuer) login(ctx context.Context, email, password string, find accountFinder) (*services.Session, error) {
	email = normalizeEmail(email)
	log := logger.Log(ctx).With(
		zap.String("collection", s.collection),
		zap.String("email", email),
	)
	log.Debug(ctx, msgLoginAttempt)

	locked, err := s.limiter.Locked(ctx, s.collection, email)
	if err != nil {
		log.Warn(ctx, msgLimiterUnavailable, zap.Error(err))
	}
	if locked {
		log.Info(ctx, msgLoginLocked)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingLock, services.ErrAccountLocked)
	}

	acc, err := find(ctx, email)
	if err != nil {
		log.Error(ctx, msgErrFindingAccount, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingAccount, err)
	}
	if acc == nil {
		log.Debug(ctx, msgLoginUnknownEmail)
		s.registerFailure(ctx, log, email)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	valid, err := s.passwordSvc.Verify(ctx, password, acc.passwordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPasswd, zap.Error(err), zap.String("userID", acc.id))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgLoginWrongPassword, zap.String("userID", acc.id))
		s.registerFailure(ctx, log, email)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	if err := s.limiter.Reset(ctx, s.collection, email); err != nil {
		log.Warn(ctx, msgLimiterUnavailable, zap.Error(err))
	}

	session, err := s.issue(ctx, acc.id, acc.email)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", acc.id))
	return session, nil
}

func (s *sessionIssuer) registerFailure(ctx context.Context, log *logger.Logger, email string) {
	s.metrics.LoginFailed(s.collection)
	attempts, err := s.limiter.RegisterFailure(ctx, s.collection, email)
	if err != nil {
		log.Warn(ctx, msgLimiterUnavailable, zap.Error(err))
		return
	}
	log.Debug(ctx, "login failure registered", zap.Int("attempts", attempts))
}

// issue выдает токен коллекции для пользователя.
func (s *sessionIssuer) issue(ctx context.Context, userID, email string) (*services.Session, error) {
	token, expiresAt, err := s.tokenSvc.Generate(ctx, s.collection, userID, email)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrGeneratingTokens, zap.Error(err), zap.String("userID", userID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	return &services.Session{
		Token:      token,
		ExpiresAt:  expiresAt,
		Collection: s.collection,
		UserID:     userID,
		Email:      email,
	}, nil
}
