package api

import (
	"context"

	"simplylife/internal/cms/domain/entities"
)

// SupplierProductView - связанный продукт, список продуктов и видимость полей формы.
type SupplierProductView struct {
	Associated *entities.ProductAssociation
	Products   []entities.SupplierProduct
	Visibility entities.FieldVisibility
	Toggled    bool
}

// SupplierUseCase определяет операции с поставщиками.
type SupplierUseCase interface {
	ProductView(ctx context.Context, supplierID string) (*SupplierProductView, error)

	SetProduct(ctx context.Context, supplierID, productID string) error

	ListProducts(ctx context.Context) ([]entities.SupplierProduct, error)

	ListSuppliers(ctx context.Context, filter entities.SupplierFilter) ([]*entities.Supplier, error)
}
