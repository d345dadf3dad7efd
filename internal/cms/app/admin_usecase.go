package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/domain/services"
	"simplylife/internal/cms/ports/api"
	"simplylife/internal/cms/ports/repositories"
	svc "simplylife/internal/cms/ports/services"
	"simplylife/internal/registration/schema"
	"simplylife/pkg/logger"
)

// Схемы заголовка Authorization.
const (
	SchemeBearer = "Bearer"
	SchemeJWT    = "JWT"
	// APIKeyPrefix - префикс API-ключа коллекции администраторов.
	APIKeyPrefix = entities.CollectionAdmins + " API-Key "
)

// Значения пагинации по умолчанию.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

const (
	methodAdminRegisterFirst = "Admin.RegisterFirst"
	methodAdminCreate        = "Admin.Create"
	methodAdminUpdate        = "Admin.Update"
	methodAdminDelete        = "Admin.Delete"
	methodAuthenticate       = "Authenticate"

	msgFirstAdminExists   = "first admin already registered"
	msgAdminCreated       = "admin created successfully"
	msgAdminUpdated       = "admin updated successfully"
	msgAdminDeleted       = "admin deleted successfully"
	msgErrCountAdmins     = "failed to count admins"
	msgErrCheckEmail      = "failed to check existing email"
	msgErrHashPassword    = "failed to hash password"
	msgErrCreateAdmin     = "failed to create admin"
	msgErrUpdateAdmin     = "failed to update admin"
	msgErrDeleteAdmin     = "failed to delete admin"
	msgUnsupportedScheme  = "unsupported authorization scheme"
	msgInvalidCredentials = "invalid authorization credentials"

	errCtxCountingAdmins   = "counting admins"
	errCtxValidatingEmail  = "validating email"
	errCtxValidatingName   = "validating fullname"
	errCtxValidatingPasswd = "validating password"
	errCtxCheckingEmail    = "checking existing email"
	errCtxHashingPassword  = "hashing password"
	errCtxCreatingAdmin    = "creating admin"
	errCtxFindingAdmin     = "finding admin"
	errCtxListingAdmins    = "listing admins"
	errCtxUpdatingAdmin    = "updating admin"
	errCtxDeletingAdmin    = "deleting admin"
	errCtxAuthenticating   = "authenticating"
)

// AdminUseCaseImpl реализует интерфейс AdminUseCase.
type AdminUseCaseImpl struct {
	adminRepo   repositories.AdminRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	sessions    *sessionIssuer
}

// NewAdminUseCase создает сценарии коллекции администраторов.
func NewAdminUseCase(
	adminRepo repositories.AdminRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	limiter svc.LoginLimiter,
	metrics svc.Metrics,
) api.AdminUseCase {
	return &AdminUseCaseImpl{
		adminRepo:   adminRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		sessions: &sessionIssuer{
			collection:  entities.CollectionAdmins,
			limiter:     limiter,
			passwordSvc: passwordSvc,
			tokenSvc:    tokenSvc,
			metrics:     metrics,
		},
	}
}

// Login аутентифицирует администратора по email и паролю.
func (a *AdminUseCaseImpl) Login(ctx context.Context, email, password string) (*services.Session, error) {
	return a.sessions.login(ctx, email, password, func(ctx context.Context, email string) (*account, error) {
		admin, err := a.adminRepo.FindByEmail(ctx, email)
		if errors.Is(err, entities.ErrAdminNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &account{id: admin.ID, email: admin.Email, passwordHash: admin.PasswordHash}, nil
	})
}

// RegisterFirst создает первого администратора. Доступно, только пока коллекция пуста.
func (a *AdminUseCaseImpl) RegisterFirst(ctx context.Context, input api.AdminInput) (*entities.Admin, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAdminRegisterFirst))

	count, err := a.adminRepo.Count(ctx)
	if err != nil {
		log.Error(ctx, msgErrCountAdmins, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCountingAdmins, err)
	}
	if count > 0 {
		log.Info(ctx, msgFirstAdminExists)
		return nil, fmt.Errorf("%s: %w", errCtxCreatingAdmin, services.ErrFirstAdminExists)
	}

	return a.Create(ctx, input)
}

// Create создает администратора.
func (a *AdminUseCaseImpl) Create(ctx context.Context, input api.AdminInput) (*entities.Admin, error) {
	email := normalizeEmail(input.Email)
	log := logger.Log(ctx).With(zap.String("method", methodAdminCreate), zap.String("email", email))

	if !schema.ValidEmail(email) {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, entities.ErrInvalidEmail)
	}
	fullname := strings.TrimSpace(input.Fullname)
	if fullname == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingName, entities.ErrEmptyFullname)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPasswd, services.ErrInvalidPassword)
	}

	if err := a.ensureEmailFree(ctx, log, email); err != nil {
		return nil, err
	}

	hash, err := a.passwordSvc.Hash(ctx, input.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	admin := &entities.Admin{
		Email:        email,
		Fullname:     fullname,
		PasswordHash: hash,
	}
	if input.UseAPIKey {
		admin.APIKey = uuid.NewString()
	}

	created, err := a.adminRepo.Create(ctx, admin)
	if err != nil {
		log.Error(ctx, msgErrCreateAdmin, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingAdmin, err)
	}

	log.Info(ctx, msgAdminCreated, zap.String("adminID", created.ID))
	return created, nil
}

// Get возвращает администратора по идентификатору.
func (a *AdminUseCaseImpl) Get(ctx context.Context, id string) (*entities.Admin, error) {
	admin, err := a.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingAdmin, err)
	}
	return admin, nil
}

// List возвращает страницу администраторов и их общее число.
func (a *AdminUseCaseImpl) List(ctx context.Context, limit, page int) ([]*entities.Admin, int, error) {
	limit, offset := paginate(limit, page)

	admins, err := a.adminRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", errCtxListingAdmins, err)
	}
	total, err := a.adminRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", errCtxCountingAdmins, err)
	}

	return admins, total, nil
}

// Update частично обновляет администратора.
func (a *AdminUseCaseImpl) Update(ctx context.Context, id string, patch api.AdminPatch) (*entities.Admin, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAdminUpdate), zap.String("adminID", id))

	admin, err := a.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingAdmin, err)
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if !schema.ValidEmail(email) {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, entities.ErrInvalidEmail)
		}
		if email != admin.Email {
			if err := a.ensureEmailFree(ctx, log, email); err != nil {
				return nil, err
			}
			admin.Email = email
		}
	}
	if patch.Fullname != nil {
		fullname := strings.TrimSpace(*patch.Fullname)
		if fullname == "" {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingName, entities.ErrEmptyFullname)
		}
		admin.Fullname = fullname
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingPasswd, services.ErrInvalidPassword)
		}
		hash, err := a.passwordSvc.Hash(ctx, *patch.Password)
		if err != nil {
			log.Error(ctx, msgErrHashPassword, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
		}
		admin.PasswordHash = hash
	}
	if patch.UseAPIKey != nil {
		switch {
		case !*patch.UseAPIKey:
			admin.APIKey = ""
		case admin.APIKey == "":
			admin.APIKey = uuid.NewString()
		}
	}

	updated, err := a.adminRepo.Update(ctx, admin)
	if err != nil {
		log.Error(ctx, msgErrUpdateAdmin, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingAdmin, err)
	}

	log.Info(ctx, msgAdminUpdated)
	return updated, nil
}

// Delete удаляет администратора.
func (a *AdminUseCaseImpl) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodAdminDelete), zap.String("adminID", id))

	if err := a.adminRepo.Delete(ctx, id); err != nil {
		log.Error(ctx, msgErrDeleteAdmin, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingAdmin, err)
	}

	log.Info(ctx, msgAdminDeleted)
	return nil
}

// Authenticate принимает "Bearer <jwt>", "JWT <jwt>" или "admins API-Key <key>".
func (a *AdminUseCaseImpl) Authenticate(ctx context.Context, authorization string) (*services.Principal, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))
	authorization = strings.TrimSpace(authorization)

	if key, ok := strings.CutPrefix(authorization, APIKeyPrefix); ok {
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%s: %w", errCtxAuthenticating, services.ErrUnauthorized)
		}
		admin, err := a.adminRepo.FindByAPIKey(ctx, key)
		if err != nil {
			log.Debug(ctx, msgInvalidCredentials, zap.Error(err))
			if errors.Is(err, entities.ErrAdminNotFound) {
				return nil, fmt.Errorf("%s: %w", errCtxAuthenticating, services.ErrUnauthorized)
			}
			return nil, fmt.Errorf("%s: %w", errCtxAuthenticating, err)
		}
		return &services.Principal{ID: admin.ID, Email: admin.Email, Collection: entities.CollectionAdmins}, nil
	}

	scheme, token, found := strings.Cut(authorization, " ")
	if !found || (scheme != SchemeBearer && scheme != SchemeJWT) || strings.TrimSpace(token) == "" {
		log.Debug(ctx, msgUnsupportedScheme)
		return nil, fmt.Errorf("%s: %w", errCtxAuthenticating, services.ErrUnauthorized)
	}

	claims, err := a.tokenSvc.Validate(ctx, strings.TrimSpace(token))
	if err != nil {
		log.Debug(ctx, msgInvalidCredentials, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxAuthenticating, services.ErrUnauthorized, err)
	}

	return &services.Principal{ID: claims.UserID, Email: claims.Email, Collection: claims.Collection}, nil
}

func (a *AdminUseCaseImpl) ensureEmailFree(ctx context.Context, log *logger.Logger, email string) error {
	existing, err := a.adminRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrAdminNotFound) {
		log.Error(ctx, msgErrCheckEmail, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}
	if existing != nil {
		return fmt.Errorf("%s: %w", errCtxCheckingEmail, services.ErrEmailAlreadyExists)
	}
	return nil
}

// NormalizePage приводит параметры страницы к допустимым значениям.
func NormalizePage(limit, page int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if page < 1 {
		page = 1
	}
	return limit, page
}

// paginate нормализует limit и вычисляет смещение для страницы, начиная с 1.
func paginate(limit, page int) (int, int) {
	limit, page = NormalizePage(limit, page)
	return limit, (page - 1) * limit
}
