package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"simplylife/internal/cms/adapters/http/middleware"
	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/ports/api"
	"simplylife/internal/registration/schema"
	"simplylife/pkg/i18n"
	"simplylife/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerAppUserLogin      = "app-users handler: login"
	LogHandlerFinishRegistation = "app-users handler: finish registration"
	LogHandlerForgotPassword    = "app-users handler: forgot password"

	ErrorReadingUpload = "error reading uploaded file"
)

// ImagePart - имя части multipart-запроса с изображением.
const ImagePart = "file"

// AppUserHandler обслуживает коллекцию пользователей приложения.
type AppUserHandler struct {
	users       api.AppUserUseCase
	maxFileSize int64
}

// NewAppUserHandler создает обработчик коллекции пользователей приложения.
func NewAppUserHandler(users api.AppUserUseCase, maxFileSize int64) *AppUserHandler {
	if maxFileSize <= 0 {
		maxFileSize = schema.MaxImageSize
	}
	return &AppUserHandler{users: users, maxFileSize: maxFileSize}
}

// Login выдает токен пользователю приложения.
func (h *AppUserHandler) Login(c fiber.Ctx) error {
	requestCtx := middleware.Context(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerAppUserLogin)

	var req LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
	}
	if req.Email == "" || req.Password == "" {
		return sendError(c, fiber.StatusBadRequest, "email and password are required")
	}

	session, err := h.users.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, toLoginResponse(session))
}

// Create создает пользователя и отправляет ему приглашение.
func (h *AppUserHandler) Create(c fiber.Ctx) error {
	var req AppUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	user, err := h.users.Create(middleware.Context(c), api.AppUserInput{
		Email:     deref(req.Email),
		Role:      deref(req.Role),
		Lastname:  deref(req.Lastname),
		Firstname: deref(req.Firstname),
		Password:  deref(req.Password),
	}, locale(c))
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusCreated, fiber.Map{
		"message": "App user successfully created.",
		"doc":     toAppUserResponse(user),
	})
}

// Get возвращает пользователя. Пользователь приложения видит только себя.
func (h *AppUserHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, entities.ErrAppUserNotFound)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	if !canAccessAppUser(c, id) {
		return sendError(c, fiber.StatusForbidden, middleware.ErrorForbidden)
	}

	user, err := h.users.Get(middleware.Context(c), id)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, toAppUserResponse(user))
}

// List возвращает страницу пользователей.
func (h *AppUserHandler) List(c fiber.Ctx) error {
	limit, page := pageParams(c)

	users, total, err := h.users.List(middleware.Context(c), limit, page)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, newPage(mapSlice(users, toAppUserResponse), total, limit, page))
}

// Update частично обновляет пользователя.
func (h *AppUserHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, entities.ErrAppUserNotFound)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	if !canAccessAppUser(c, id) {
		return sendError(c, fiber.StatusForbidden, middleware.ErrorForbidden)
	}

	var req AppUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
	}
	// Роль и email меняет только администратор.
	if (req.Role != nil || req.Email != nil) && !isAdmin(c) {
		return sendError(c, fiber.StatusForbidden, middleware.ErrorForbidden)
	}

	user, err := h.users.Update(middleware.Context(c), id, api.AppUserPatch{
		Email:         req.Email,
		Role:          req.Role,
		Lastname:      req.Lastname,
		Firstname:     req.Firstname,
		Cabinet:       req.Cabinet,
		AdressCabinet: req.AdressCabinet,
		Birthday:      req.Birthday,
		EntryDate:     req.EntryDate,
		RGPD:          req.RGPD,
		Phone:         req.Phone,
		Password:      req.Password,
	})
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, fiber.Map{
		"message": "Updated successfully.",
		"doc":     toAppUserResponse(user),
	})
}

// Delete удаляет пользователя.
func (h *AppUserHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, entities.ErrAppUserNotFound)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	if err := h.users.Delete(middleware.Context(c), id); err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, fiber.Map{"id": id, "message": "Deleted successfully."})
}

// RegistrationProps возвращает параметры страницы завершения регистрации.
func (h *AppUserHandler) RegistrationProps(c fiber.Ctx) error {
	id, err := pathID(c, entities.ErrAppUserNotFound)
	if err != nil {
		return sendUseCaseError(c, err)
	}

	props, err := h.users.RegistrationProps(middleware.Context(c), id, locale(c))
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, props)
}

// FinishRegistration принимает multipart-форму завершения регистрации.
// Файл больше допустимого размера отклоняется с кодом 413 и локализованным сообщением.
func (h *AppUserHandler) FinishRegistration(c fiber.Ctx) error {
	requestCtx := middleware.Context(c)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerFinishRegistation)

	loc := locale(c)
	sub := schema.Submission{
		ID:            c.FormValue(schema.FieldID),
		Role:          c.FormValue(schema.FieldRole),
		Email:         c.FormValue(schema.FieldEmail),
		Password:      c.FormValue(schema.FieldPassword),
		Lastname:      c.FormValue(schema.FieldLastname),
		Firstname:     c.FormValue(schema.FieldFirstname),
		Cabinet:       c.FormValue(schema.FieldCabinet),
		AdressCabinet: c.FormValue(schema.FieldAdressCabinet),
		Birthday:      c.FormValue(schema.FieldBirthday),
		EntryDate:     c.FormValue(schema.FieldEntryDate),
		RGPD:          c.FormValue(schema.FieldRGPD),
		Phone:         c.FormValue(schema.FieldPhone),
	}

	fh, err := c.FormFile(ImagePart)
	switch {
	case err == nil && fh != nil:
		if fh.Size > h.maxFileSize {
			return sendError(c, fiber.StatusRequestEntityTooLarge, i18n.T(loc, i18n.UploadTooLarge))
		}
		attachment, err := readAttachment(fh)
		if err != nil {
			log.Error(requestCtx, ErrorReadingUpload, zap.Error(err))
			return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
		}
		sub.Image = attachment
	case err != nil && !errors.Is(err, fasthttp.ErrMissingFile):
		return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	user, err := h.users.FinishRegistration(requestCtx, sub, loc)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusCreated, fiber.Map{
		"message": i18n.T(loc, i18n.SuccessTitle),
		"doc":     toAppUserResponse(user),
	})
}

// ForgotPassword выдает токен сброса пароля. Ответ не раскрывает, существует ли адрес.
func (h *AppUserHandler) ForgotPassword(c fiber.Ctx) error {
	requestCtx := middleware.Context(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerForgotPassword)

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.Email == "" {
		return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if err := h.users.ForgotPassword(requestCtx, req.Email, locale(c)); err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, fiber.Map{"message": "Success"})
}

// ResetPassword устанавливает новый пароль по токену и выполняет вход.
func (h *AppUserHandler) ResetPassword(c fiber.Ctx) error {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.Token == "" {
		return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	session, err := h.users.ResetPassword(middleware.Context(c), req.Token, req.Password, locale(c))
	if err != nil {
		return sendUseCaseError(c, err)
	}
	resp := toLoginResponse(session)
	resp.Message = "Password reset successfully."
	return sendJSON(c, fiber.StatusOK, resp)
}

func canAccessAppUser(c fiber.Ctx, id string) bool {
	p := middleware.Principal(c)
	if p == nil {
		return false
	}
	return p.Collection == entities.CollectionAdmins ||
		(p.Collection == entities.CollectionAppUsers && p.ID == id)
}

func isAdmin(c fiber.Ctx) bool {
	p := middleware.Principal(c)
	return p != nil && p.Collection == entities.CollectionAdmins
}

func readAttachment(fh *multipart.FileHeader) (*schema.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	return &schema.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Content:     content,
	}, nil
}
