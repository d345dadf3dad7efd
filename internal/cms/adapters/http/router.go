// Package http содержит HTTP сервер CMS.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"simplylife/internal/cms/adapters/http/handlers"
	"simplylife/internal/cms/adapters/http/middleware"
	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/ports/api"
	"simplylife/pkg/i18n"
)

// Dependencies - сценарии и инфраструктура, нужные маршрутизатору.
type Dependencies struct {
	Admins    api.AdminUseCase
	AppUsers  api.AppUserUseCase
	Suppliers api.SupplierUseCase
	Health    api.HealthUseCase

	Observer middleware.HTTPObserver
	Gatherer prometheus.Gatherer

	CORSOrigins []string
	MaxFileSize int64
	MediaDir    string
	MediaPath   string
}

// NewErrorHandler отвечает JSON на ошибки, не обработанные маршрутами.
// Превышение размера тела возвращает локализованное сообщение о слишком большом файле.
func NewErrorHandler() fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := handlers.ErrorInternal

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}
		if code == fiber.StatusRequestEntityTooLarge {
			message = i18n.T(i18n.Parse(c.Get(fiber.HeaderAcceptLanguage)), i18n.UploadTooLarge)
		}

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	admins := handlers.NewAdminHandler(deps.Admins)
	appUsers := handlers.NewAppUserHandler(deps.AppUsers, deps.MaxFileSize)
	suppliers := handlers.NewSupplierHandler(deps.Suppliers)
	health := handlers.NewHealthHandler(deps.Health)

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestContextMiddleware())
	app.Use(middleware.NewLoggerMiddleware(deps.Observer))
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	if deps.MediaDir != "" && deps.MediaPath != "" {
		app.Get(deps.MediaPath+"/*", static.New(deps.MediaDir))
	}

	authRequired := middleware.NewAuthMiddleware(deps.Admins)
	adminsOnly := middleware.RequireCollection(entities.CollectionAdmins)

	apiGroup := app.Group("/api")
	apiGroup.Get("/openapi.json", handlers.OpenAPI("Simply Life CMS", "1.0.0")).Name("OpenAPI document")
	apiGroup.Get("/test-db-latency", health.DatabaseLatency).Name("Database latency probe")

	// Администраторы.
	adminRoutes := apiGroup.Group("/admins")
	adminRoutes.Post("/login", admins.Login).Name("Admin login")
	adminRoutes.Post("/first-register", admins.RegisterFirst).Name("Register first admin")
	adminRoutes.Get("/me", authRequired, admins.Me).Name("Current user")
	adminRoutes.Get("/", authRequired, adminsOnly, admins.List).Name("List admins")
	adminRoutes.Post("/", authRequired, adminsOnly, admins.Create).Name("Create admin")
	adminRoutes.Get("/:id", authRequired, adminsOnly, admins.Get).Name("Get admin")
	adminRoutes.Patch("/:id", authRequired, adminsOnly, admins.Update).Name("Update admin")
	adminRoutes.Delete("/:id", authRequired, adminsOnly, admins.Delete).Name("Delete admin")

	// Пользователи приложения: публичные маршруты регистрации и входа.
	appUserRoutes := apiGroup.Group("/app-users")
	appUserRoutes.Post("/login", appUsers.Login).Name("App user login")
	appUserRoutes.Post("/finish-registration", appUsers.FinishRegistration).Name("Finish registration")
	appUserRoutes.Post("/forgot-password", appUsers.ForgotPassword).Name("Forgot password")
	appUserRoutes.Post("/reset-password", appUsers.ResetPassword).Name("Reset password")
	appUserRoutes.Get("/create/:id", appUsers.RegistrationProps).Name("Registration page props")
	appUserRoutes.Get("/", authRequired, adminsOnly, appUsers.List).Name("List app users")
	appUserRoutes.Post("/", authRequired, adminsOnly, appUsers.Create).Name("Invite app user")
	appUserRoutes.Get("/:id", authRequired, appUsers.Get).Name("Get app user")
	appUserRoutes.Patch("/:id", authRequired, appUsers.Update).Name("Update app user")
	appUserRoutes.Delete("/:id", authRequired, adminsOnly, appUsers.Delete).Name("Delete app user")

	// Поставщики.
	apiGroup.Get("/supplier-products", authRequired, adminsOnly, suppliers.ListProducts).Name("List supplier products")
	supplierRoutes := apiGroup.Group("/suppliers", authRequired, adminsOnly)
	supplierRoutes.Get("/", suppliers.List).Name("List suppliers")
	supplierRoutes.Get("/:id/product", suppliers.ProductView).Name("Supplier product")
	supplierRoutes.Put("/:id/product", suppliers.SetProduct).Name("Set supplier product")

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": handlers.ErrorNotFound,
		})
	})
}
