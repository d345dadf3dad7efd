package repositories

import (
	"context"

	"simplylife/internal/cms/domain/entities"
)

// SupplierRepository определяет операции с поставщиками и их продуктами.
type SupplierRepository interface {
	// FindProductAssociation возвращает nil без ошибки, если продукт не связан.
	FindProductAssociation(ctx context.Context, supplierID string) (*entities.ProductAssociation, error)

	ListProducts(ctx context.Context) ([]entities.SupplierProduct, error)

	// SetProduct заменяет связанный продукт; пустой productID удаляет связь.
	SetProduct(ctx context.Context, supplierID, productID string) error

	List(ctx context.Context, filter entities.SupplierFilter) ([]*entities.Supplier, error)
}
