package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"simplylife/internal/cms/adapters/http/middleware"
	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/ports/api"
	"simplylife/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerAdminLogin    = "admins handler: login"
	LogHandlerFirstRegister = "admins handler: first register"
)

// AdminHandler обслуживает коллекцию администраторов.
type AdminHandler struct {
	admins api.AdminUseCase
}

// NewAdminHandler создает обработчик коллекции администраторов.
func NewAdminHandler(admins api.AdminUseCase) *AdminHandler {
	return &AdminHandler{admins: admins}
}

// Login выдает токен администратору.
func (h *AdminHandler) Login(c fiber.Ctx) error {
	requestCtx := middleware.Context(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerAdminLogin)

	var req LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
	}
	if req.Email == "" || req.Password == "" {
		return sendError(c, fiber.StatusBadRequest, "email and password are required")
	}

	session, err := h.admins.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, toLoginResponse(session))
}

// RegisterFirst создает первого администратора и сразу выполняет вход.
func (h *AdminHandler) RegisterFirst(c fiber.Ctx) error {
	requestCtx := middleware.Context(c)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerFirstRegister)

	var req AdminRequest
	if err := c.Bind().JSON(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
	}
	input := adminInput(req)

	admin, err := h.admins.RegisterFirst(requestCtx, input)
	if err != nil {
		return sendUseCaseError(c, err)
	}

	session, err := h.admins.Login(requestCtx, input.Email, input.Password)
	if err != nil {
		log.Error(requestCtx, "login after first register failed", zap.Error(err))
		return sendUseCaseError(c, err)
	}

	resp := toLoginResponse(session)
	resp.Message = "Successfully registered first user."
	return sendJSON(c, fiber.StatusCreated, fiber.Map{
		"message": resp.Message,
		"token":   resp.Token,
		"exp":     resp.Exp,
		"user":    toAdminResponse(admin),
	})
}

// Me возвращает текущего аутентифицированного субъекта.
func (h *AdminHandler) Me(c fiber.Ctx) error {
	principal := middleware.Principal(c)
	if principal == nil {
		return sendJSON(c, fiber.StatusOK, fiber.Map{"user": nil})
	}
	return sendJSON(c, fiber.StatusOK, fiber.Map{
		"user": SessionUser{ID: principal.ID, Email: principal.Email, Collection: principal.Collection},
	})
}

// Create создает администратора.
func (h *AdminHandler) Create(c fiber.Ctx) error {
	var req AdminRequest
	if err := c.Bind().JSON(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	admin, err := h.admins.Create(middleware.Context(c), adminInput(req))
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusCreated, fiber.Map{
		"message": "Admin successfully created.",
		"doc":     toAdminResponse(admin),
	})
}

// Get возвращает администратора по ID.
func (h *AdminHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, entities.ErrAdminNotFound)
	if err != nil {
		return sendUseCaseError(c, err)
	}

	admin, err := h.admins.Get(middleware.Context(c), id)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, toAdminResponse(admin))
}

// List возвращает страницу администраторов.
func (h *AdminHandler) List(c fiber.Ctx) error {
	limit, page := pageParams(c)

	admins, total, err := h.admins.List(middleware.Context(c), limit, page)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, newPage(mapSlice(admins, toAdminResponse), total, limit, page))
}

// Update частично обновляет администратора.
func (h *AdminHandler) Update(c fiber.Ctx) error {
	var req AdminRequest
	if err := c.Bind().JSON(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	id, err := pathID(c, entities.ErrAdminNotFound)
	if err != nil {
		return sendUseCaseError(c, err)
	}

	admin, err := h.admins.Update(middleware.Context(c), id, api.AdminPatch{
		Email:     req.Email,
		Fullname:  req.Fullname,
		Password:  req.Password,
		UseAPIKey: req.EnableAPIKey,
	})
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, fiber.Map{
		"message": "Updated successfully.",
		"doc":     toAdminResponse(admin),
	})
}

// Delete удаляет администратора.
func (h *AdminHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, entities.ErrAdminNotFound)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	if err := h.admins.Delete(middleware.Context(c), id); err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, fiber.Map{"id": id, "message": "Deleted successfully."})
}

func adminInput(req AdminRequest) api.AdminInput {
	return api.AdminInput{
		Email:     deref(req.Email),
		Fullname:  deref(req.Fullname),
		Password:  deref(req.Password),
		UseAPIKey: req.EnableAPIKey != nil && *req.EnableAPIKey,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
