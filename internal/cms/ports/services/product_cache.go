package services

import (
	"context"

	"simplylife/internal/cms/domain/entities"
)

// ProductCache кэширует упорядоченный список продуктов поставщиков.
type ProductCache interface {
	Get(ctx context.Context) ([]entities.SupplierProduct, bool, error)

	Set(ctx context.Context, products []entities.SupplierProduct) error

	Invalidate(ctx context.Context) error
}
