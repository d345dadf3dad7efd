package handlers

import (
	"github.com/gofiber/fiber/v3"

	"simplylife/internal/cms/adapters/http/middleware"
	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/ports/api"
)

// newDocumentID - идентификатор еще не сохраненного поставщика в адресе запроса.
const newDocumentID = "create"

// SupplierHandler обслуживает виджеты поставщиков.
type SupplierHandler struct {
	suppliers api.SupplierUseCase
}

// NewSupplierHandler создает обработчик поставщиков.
func NewSupplierHandler(suppliers api.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// ProductView возвращает связанный продукт поставщика и видимость полей формы.
func (h *SupplierHandler) ProductView(c fiber.Ctx) error {
	var id string
	if c.Params("id") != newDocumentID {
		var err error
		if id, err = pathID(c, entities.ErrSupplierNotFound); err != nil {
			return sendUseCaseError(c, err)
		}
	}

	view, err := h.suppliers.ProductView(middleware.Context(c), id)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, fiber.Map{
		"associated": view.Associated,
		"products":   view.Products,
		"visibility": view.Visibility,
		"toggled":    view.Toggled,
	})
}

// SetProduct заменяет продукт поставщика. Пустое значение удаляет связь.
func (h *SupplierHandler) SetProduct(c fiber.Ctx) error {
	var req struct {
		Product string `json:"product"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	id, err := pathID(c, entities.ErrSupplierNotFound)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	if err := h.suppliers.SetProduct(middleware.Context(c), id, req.Product); err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, fiber.Map{"id": id, "product": req.Product})
}

// ListProducts возвращает упорядоченный список продуктов.
func (h *SupplierHandler) ListProducts(c fiber.Ctx) error {
	products, err := h.suppliers.ListProducts(middleware.Context(c))
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, fiber.Map{"docs": products})
}

// List возвращает поставщиков по одному активному фильтру.
func (h *SupplierHandler) List(c fiber.Ctx) error {
	filter := entities.ParseSupplierFilter(c.Query("selection"), c.Query("epargne"), c.Query("category"))

	suppliers, err := h.suppliers.ListSuppliers(middleware.Context(c), filter)
	if err != nil {
		return sendUseCaseError(c, err)
	}
	return sendJSON(c, fiber.StatusOK, fiber.Map{
		"filter": filter,
		"label":  filter.Label(),
		"docs":   mapSlice(suppliers, toSupplierResponse),
	})
}
