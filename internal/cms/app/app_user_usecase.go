package app

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/domain/services"
	"simplylife/internal/cms/ports/api"
	"simplylife/internal/cms/ports/repositories"
	svc "simplylife/internal/cms/ports/services"
	"simplylife/internal/registration/schema"
	"simplylife/pkg/i18n"
	"simplylife/pkg/logger"
)

// Виды писем для метрик.
const (
	EmailKindInvite         = "invite"
	EmailKindRegistration   = "registration"
	EmailKindForgotPassword = "forgot_password"
)

// Причины отклонения формы регистрации для метрик.
const (
	RejectValidation   = "validation"
	RejectNotFound     = "not_found"
	RejectCompleted    = "completed"
	RejectEmailChanged = "email_changed"
	RejectRoleChanged  = "role_changed"
	RejectInternal     = "internal"
)

// RegistrationPath - путь страницы завершения регистрации.
const RegistrationPath = "/app-users/create/"

const resetExpiryLayout = "02/01/2006 15:04"

const (
	methodAppUserCreate      = "AppUser.Create"
	methodAppUserUpdate      = "AppUser.Update"
	methodAppUserDelete      = "AppUser.Delete"
	methodFinishRegistration = "AppUser.FinishRegistration"
	methodForgotPassword     = "AppUser.ForgotPassword"
	methodResetPassword      = "AppUser.ResetPassword"

	msgAppUserCreated       = "app user created successfully"
	msgAppUserUpdated       = "app user updated successfully"
	msgAppUserDeleted       = "app user deleted successfully"
	msgRegistrationRejected = "registration submission rejected"
	msgRegistrationFinished = "registration finished successfully"
	msgForgotUnknownEmail   = "forgot password requested for unknown email"
	msgResetTokenIssued     = "reset token issued"
	msgPasswordReset        = "password reset successfully"
	msgEmailSent            = "email sent"
	msgErrSendEmail         = "failed to send email"
	msgErrStoreImage        = "failed to store image"
	msgErrDeleteImage       = "failed to delete previous image"
	msgErrCreateAppUser     = "failed to create app user"
	msgErrUpdateAppUser     = "failed to update app user"
	msgErrDeleteAppUser     = "failed to delete app user"
	msgErrFindAppUser       = "failed to find app user"
	msgErrCheckAppUserEmail = "failed to check existing email"
	msgErrHashAppUserPasswd = "failed to hash password"

	errCtxValidatingRole     = "validating role"
	errCtxValidatingLastname = "validating lastname"
	errCtxFindingAppUser     = "finding app user"
	errCtxListingAppUsers    = "listing app users"
	errCtxCountingAppUsers   = "counting app users"
	errCtxCreatingAppUser    = "creating app user"
	errCtxUpdatingAppUser    = "updating app user"
	errCtxDeletingAppUser    = "deleting app user"
	errCtxValidatingForm     = "validating registration form"
	errCtxStoringImage       = "storing image"
	errCtxSendingEmail       = "sending email"
	errCtxResettingPassword  = "resetting password"
	errCtxRegistrationProps  = "loading registration props"
	errCtxCheckingInvitation = "checking invitation"
)

// AppUserConfig содержит параметры сценариев пользователей приложения.
type AppUserConfig struct {
	// ServerURL - публичный адрес сервера для ссылок в письмах и на странице регистрации.
	ServerURL string
	// ResetTokenTTL - время жизни токена сброса пароля.
	ResetTokenTTL time.Duration
}

// AppUserUseCaseImpl реализует интерфейс AppUserUseCase.
type AppUserUseCaseImpl struct {
	userRepo    repositories.AppUserRepository
	passwordSvc svc.PasswordService
	mailer      svc.Mailer
	images      svc.ImageStore
	metrics     svc.Metrics
	limiter     svc.LoginLimiter
	sessions    *sessionIssuer
	config      AppUserConfig
	now         func() time.Time
}

// NewAppUserUseCase создает сценарии коллекции пользователей приложения.
func NewAppUserUseCase(
	userRepo repositories.AppUserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	limiter svc.LoginLimiter,
	mailer svc.Mailer,
	images svc.ImageStore,
	metrics svc.Metrics,
	config AppUserConfig,
) *AppUserUseCaseImpl {
	config.ServerURL = strings.TrimRight(config.ServerURL, "/")
	return &AppUserUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		mailer:      mailer,
		images:      images,
		metrics:     metrics,
		limiter:     limiter,
		sessions: &sessionIssuer{
			collection:  entities.CollectionAppUsers,
			limiter:     limiter,
			passwordSvc: passwordSvc,
			tokenSvc:    tokenSvc,
			metrics:     metrics,
		},
		config: config,
		now:    time.Now,
	}
}

var _ api.AppUserUseCase = (*AppUserUseCaseImpl)(nil)

// Login аутентифицирует пользователя приложения.
func (u *AppUserUseCaseImpl) Login(ctx context.Context, email, password string) (*services.Session, error) {
	return u.sessions.login(ctx, email, password, func(ctx context.Context, email string) (*account, error) {
		user, err := u.userRepo.FindByEmail(ctx, email)
		if errors.Is(err, entities.ErrAppUserNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &account{id: user.ID, email: user.Email, passwordHash: user.PasswordHash}, nil
	})
}

// InviteLink возвращает ссылку на страницу завершения регистрации.
func (u *AppUserUseCaseImpl) InviteLink(id string) string {
	return u.config.ServerURL + RegistrationPath + id
}

// Create создает пользователя и отправляет приглашение.
// Ошибка отправки письма не отменяет создание.
func (u *AppUserUseCaseImpl) Create(ctx context.Context, input api.AppUserInput, locale i18n.Locale) (*entities.AppUser, error) {
	email := normalizeEmail(input.Email)
	log := logger.Log(ctx).With(zap.String("method", methodAppUserCreate), zap.String("email", email))

	if !schema.ValidEmail(email) {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, entities.ErrInvalidEmail)
	}
	role := strings.TrimSpace(input.Role)
	if role == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingRole, entities.ErrEmptyRole)
	}
	lastname := strings.TrimSpace(input.Lastname)
	if lastname == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingLastname, entities.ErrEmptyLastname)
	}

	if err := u.ensureEmailFree(ctx, log, email); err != nil {
		return nil, err
	}

	user := &entities.AppUser{
		Email:     email,
		Role:      role,
		Lastname:  lastname,
		Firstname: strings.TrimSpace(input.Firstname),
		RGPD:      entities.ConsentAccept,
	}
	if input.Password != "" {
		hash, err := u.passwordSvc.Hash(ctx, input.Password)
		if err != nil {
			log.Error(ctx, msgErrHashAppUserPasswd, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
		}
		user.PasswordHash = hash
	}

	created, err := u.userRepo.Create(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrCreateAppUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingAppUser, err)
	}
	log.Info(ctx, msgAppUserCreated, zap.String("userID", created.ID))

	link := u.InviteLink(created.ID)
	_ = u.sendEmail(ctx, EmailKindInvite, &services.Email{
		To:      []string{created.Email},
		Subject: i18n.T(locale, i18n.InviteSubject),
		HTML:    i18n.T(locale, i18n.InviteBody, link, link),
	})

	return created, nil
}

// Get возвращает пользователя по идентификатору.
func (u *AppUserUseCaseImpl) Get(ctx context.Context, id string) (*entities.AppUser, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingAppUser, err)
	}
	return user, nil
}

// List возвращает страницу пользователей и их общее число.
func (u *AppUserUseCaseImpl) List(ctx context.Context, limit, page int) ([]*entities.AppUser, int, error) {
	limit, offset := paginate(limit, page)

	users, err := u.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", errCtxListingAppUsers, err)
	}
	total, err := u.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", errCtxCountingAppUsers, err)
	}

	return users, total, nil
}

// Update частично обновляет пользователя.
func (u *AppUserUseCaseImpl) Update(ctx context.Context, id string, patch api.AppUserPatch) (*entities.AppUser, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAppUserUpdate), zap.String("userID", id))

	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingAppUser, err)
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if !schema.ValidEmail(email) {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, entities.ErrInvalidEmail)
		}
		if email != user.Email {
			if err := u.ensureEmailFree(ctx, log, email); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if patch.Role != nil {
		role := strings.TrimSpace(*patch.Role)
		if role == "" {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingRole, entities.ErrEmptyRole)
		}
		user.Role = role
	}
	if patch.Lastname != nil {
		lastname := strings.TrimSpace(*patch.Lastname)
		if lastname == "" {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingLastname, entities.ErrEmptyLastname)
		}
		user.Lastname = lastname
	}
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	assign(&user.Firstname, patch.Firstname)
	assign(&user.Cabinet, patch.Cabinet)
	assign(&user.AdressCabinet, patch.AdressCabinet)
	assign(&user.Birthday, patch.Birthday)
	assign(&user.EntryDate, patch.EntryDate)
	assign(&user.RGPD, patch.RGPD)
	assign(&user.Phone, patch.Phone)

	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingPasswd, services.ErrInvalidPassword)
		}
		hash, err := u.passwordSvc.Hash(ctx, *patch.Password)
		if err != nil {
			log.Error(ctx, msgErrHashAppUserPasswd, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
		}
		user.PasswordHash = hash
	}

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrUpdateAppUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingAppUser, err)
	}

	log.Info(ctx, msgAppUserUpdated)
	return updated, nil
}

// Delete удаляет пользователя и его изображение.
func (u *AppUserUseCaseImpl) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodAppUserDelete), zap.String("userID", id))

	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingAppUser, err)
	}

	if err := u.userRepo.Delete(ctx, id); err != nil {
		log.Error(ctx, msgErrDeleteAppUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingAppUser, err)
	}

	if user.ImagePath != "" {
		if err := u.images.Delete(ctx, user.ImagePath); err != nil {
			log.Warn(ctx, msgErrDeleteImage, zap.Error(err), zap.String("path", user.ImagePath))
		}
	}

	log.Info(ctx, msgAppUserDeleted)
	return nil
}

// RegistrationProps возвращает параметры страницы завершения регистрации.
func (u *AppUserUseCaseImpl) RegistrationProps(ctx context.Context, id string, locale i18n.Locale) (*services.RegistrationProps, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxRegistrationProps, err)
	}
	if user.RegistrationCompleted {
		return nil, fmt.Errorf("%s: %w", errCtxRegistrationProps, entities.ErrRegistrationCompleted)
	}

	return &services.RegistrationProps{
		Email:     user.Email,
		ID:        user.ID,
		Role:      user.Role,
		ServerURL: u.config.ServerURL,
		Locale:    string(locale),
	}, nil
}

// FinishRegistration проверяет форму, сохраняет профиль и изображение и отправляет подтверждение.
// Email и роль берутся из приглашения и не могут быть изменены формой.
func (u *AppUserUseCaseImpl) FinishRegistration(ctx context.Context, sub schema.Submission, locale i18n.Locale) (*entities.AppUser, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFinishRegistration), zap.String("userID", sub.ID))

	if errs := schema.Validate(sub, locale); !errs.Valid() {
		u.reject(ctx, log, RejectValidation, zap.Strings("fields", errs.Fields()))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, &services.ValidationError{Fields: errs})
	}

	id, err := uuid.Parse(sub.ID)
	if err != nil {
		u.reject(ctx, log, RejectNotFound, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingAppUser, entities.ErrAppUserNotFound)
	}
	sub.ID = id.String()

	user, err := u.userRepo.FindByID(ctx, sub.ID)
	if err != nil {
		reason := RejectInternal
		if errors.Is(err, entities.ErrAppUserNotFound) {
			reason = RejectNotFound
		}
		u.reject(ctx, log, reason, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingAppUser, err)
	}
	if user.RegistrationCompleted {
		u.reject(ctx, log, RejectCompleted)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingInvitation, entities.ErrRegistrationCompleted)
	}
	if normalizeEmail(sub.Email) != user.Email {
		u.reject(ctx, log, RejectEmailChanged)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingInvitation, entities.ErrRegistrationEmailChanged)
	}
	// Форма проверена по присланной роли, поэтому она обязана совпадать с ролью приглашения.
	if sub.Role != user.Role {
		u.reject(ctx, log, RejectRoleChanged, zap.String("role", sub.Role))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingInvitation, entities.ErrRegistrationRoleChanged)
	}

	hash, err := u.passwordSvc.Hash(ctx, sub.Password)
	if err != nil {
		u.reject(ctx, log, RejectInternal, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	previousImage := user.ImagePath
	if sub.Image != nil {
		stored, err := u.images.Save(ctx, imageKey(user.ID, sub.Image.Filename), services.Image{
			Filename:    sub.Image.Filename,
			ContentType: sub.Image.ContentType,
			Content:     sub.Image.Content,
		})
		if err != nil {
			log.Error(ctx, msgErrStoreImage, zap.Error(err))
			u.reject(ctx, log, RejectInternal)
			return nil, fmt.Errorf("%s: %w", errCtxStoringImage, err)
		}
		user.ImagePath = stored
	}

	user.Lastname = strings.TrimSpace(sub.Lastname)
	user.Firstname = strings.TrimSpace(sub.Firstname)
	user.Cabinet = strings.TrimSpace(sub.Cabinet)
	user.AdressCabinet = strings.TrimSpace(sub.AdressCabinet)
	user.Birthday = sub.Birthday
	user.EntryDate = sub.EntryDate
	user.RGPD = sub.RGPD
	user.Phone = strings.TrimSpace(sub.Phone)
	user.PasswordHash = hash
	user.RegistrationCompleted = true
	user.ResetToken = ""
	user.ResetTokenExpiresAt = nil

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrUpdateAppUser, zap.Error(err))
		if user.ImagePath != previousImage {
			if err := u.images.Delete(ctx, user.ImagePath); err != nil {
				log.Warn(ctx, msgErrDeleteImage, zap.Error(err), zap.String("path", user.ImagePath))
			}
		}
		u.reject(ctx, log, RejectInternal)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingAppUser, err)
	}

	if previousImage != "" && previousImage != updated.ImagePath {
		if err := u.images.Delete(ctx, previousImage); err != nil {
			log.Warn(ctx, msgErrDeleteImage, zap.Error(err), zap.String("path", previousImage))
		}
	}

	u.metrics.RegistrationFinished()
	log.Info(ctx, msgRegistrationFinished)

	_ = u.sendEmail(ctx, EmailKindRegistration, &services.Email{
		To:      []string{updated.Email},
		Subject: i18n.T(locale, i18n.RegistrationSubject),
		HTML:    i18n.T(locale, i18n.RegistrationBody, updated.Firstname),
	})

	return updated, nil
}

// ForgotPassword выдает токен сброса пароля и отправляет его по почте.
// Для неизвестного email ничего не происходит, чтобы не раскрывать наличие учетной записи.
func (u *AppUserUseCaseImpl) ForgotPassword(ctx context.Context, email string, locale i18n.Locale) error {
	email = normalizeEmail(email)
	log := logger.Log(ctx).With(zap.String("method", methodForgotPassword), zap.String("email", email))

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrAppUserNotFound) {
			log.Info(ctx, msgForgotUnknownEmail)
			return nil
		}
		log.Error(ctx, msgErrFindAppUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingAppUser, err)
	}

	expiresAt := u.now().Add(u.config.ResetTokenTTL)
	user.ResetToken = uuid.NewString()
	user.ResetTokenExpiresAt = &expiresAt

	if _, err := u.userRepo.Update(ctx, user); err != nil {
		log.Error(ctx, msgErrUpdateAppUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxUpdatingAppUser, err)
	}
	log.Info(ctx, msgResetTokenIssued, zap.Time("expiresAt", expiresAt))

	return u.sendEmail(ctx, EmailKindForgotPassword, &services.Email{
		To:      []string{user.Email},
		Subject: i18n.T(locale, i18n.ForgotPasswordSubject),
		HTML:    i18n.T(locale, i18n.ForgotPasswordBody, user.ResetToken, expiresAt.Format(resetExpiryLayout)),
	})
}

// ResetPassword меняет пароль по токену сброса и выполняет вход.
func (u *AppUserUseCaseImpl) ResetPassword(ctx context.Context, token, password string, locale i18n.Locale) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodResetPassword))

	if violations := schema.PasswordViolations(password); len(violations) > 0 {
		errs := schema.Errors{}
		for _, key := range violations {
			errs[schema.FieldPassword] = append(errs[schema.FieldPassword], i18n.T(locale, key))
		}
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPasswd, &services.ValidationError{Fields: errs})
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%s: %w", errCtxResettingPassword, services.ErrInvalidResetToken)
	}

	user, err := u.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, entities.ErrAppUserNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxResettingPassword, services.ErrInvalidResetToken)
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingAppUser, err)
	}
	if !user.ResetTokenValid(token, u.now()) {
		return nil, fmt.Errorf("%s: %w", errCtxResettingPassword, services.ErrInvalidResetToken)
	}

	hash, err := u.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashAppUserPasswd, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}
	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExpiresAt = nil

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrUpdateAppUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingAppUser, err)
	}

	if err := u.limiter.Reset(ctx, entities.CollectionAppUsers, updated.Email); err != nil {
		log.Warn(ctx, msgLimiterUnavailable, zap.Error(err))
	}

	log.Info(ctx, msgPasswordReset, zap.String("userID", updated.ID))
	return u.sessions.issue(ctx, updated.ID, updated.Email)
}

func (u *AppUserUseCaseImpl) reject(ctx context.Context, log *logger.Logger, reason string, fields ...zap.Field) {
	u.metrics.RegistrationRejected(reason)
	log.Info(ctx, msgRegistrationRejected, append(fields, zap.String("reason", reason))...)
}

func (u *AppUserUseCaseImpl) sendEmail(ctx context.Context, kind string, email *services.Email) error {
	log := logger.Log(ctx).With(zap.String("email_kind", kind), zap.Strings("to", email.To))

	id, err := u.mailer.Send(ctx, email)
	if err != nil {
		u.metrics.EmailFailed(kind)
		log.Error(ctx, msgErrSendEmail, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSendingEmail, err)
	}

	u.metrics.EmailSent(kind)
	log.Info(ctx, msgEmailSent, zap.String("email_id", id))
	return nil
}

func (u *AppUserUseCaseImpl) ensureEmailFree(ctx context.Context, log *logger.Logger, email string) error {
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrAppUserNotFound) {
		log.Error(ctx, msgErrCheckAppUserEmail, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}
	if existing != nil {
		return fmt.Errorf("%s: %w", errCtxCheckingEmail, services.ErrEmailAlreadyExists)
	}
	return nil
}

// imageKey строит ключ хранения изображения из идентификатора пользователя и имени файла без пути.
func imageKey(userID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		name = "image"
	}
	return userID + "/" + name
}
