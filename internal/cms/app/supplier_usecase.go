package app

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/ports/api"
	"simplylife/internal/cms/ports/repositories"
	svc "simplylife/internal/cms/ports/services"
	"simplylife/pkg/logger"
)

const (
	msgProductCacheUnavailable = "product cache unavailable"
	msgProductCacheMiss        = "product cache miss"
	msgSupplierProductSet      = "supplier product updated"

	errCtxListingProducts    = "listing supplier products"
	errCtxFindingAssociation = "finding product association"
	errCtxSettingProduct     = "setting supplier product"
	errCtxListingSuppliers   = "listing suppliers"
)

// SupplierUseCaseImpl реализует интерфейс SupplierUseCase.
type SupplierUseCaseImpl struct {
	repo  repositories.SupplierRepository
	cache svc.ProductCache
}

// NewSupplierUseCase создает сценарии работы с поставщиками.
func NewSupplierUseCase(repo repositories.SupplierRepository, cache svc.ProductCache) api.SupplierUseCase {
	return &SupplierUseCaseImpl{repo: repo, cache: cache}
}

// ProductView возвращает связанный продукт, список продуктов и видимость полей формы поставщика.
func (s *SupplierUseCaseImpl) ProductView(ctx context.Context, supplierID string) (*api.SupplierProductView, error) {
	lookupID := supplierID
	if lookupID == "" {
		lookupID = entities.PlaceholderSupplierID
	}

	assoc, err := s.repo.FindProductAssociation(ctx, lookupID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingAssociation, err)
	}

	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	visibility, toggled := entities.ResolveVisibility(supplierID != "", assoc)
	return &api.SupplierProductView{
		Associated: assoc,
		Products:   products,
		Visibility: visibility,
		Toggled:    toggled,
	}, nil
}

// SetProduct связывает поставщика с продуктом. Пустой productID удаляет связь.
// Неизвестный продукт проверяется по свежему списку из базы.
func (s *SupplierUseCaseImpl) SetProduct(ctx context.Context, supplierID, productID string) error {
	log := logger.Log(ctx).With(zap.String("supplierID", supplierID), zap.String("productID", productID))

	if productID != "" {
		products, err := s.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxSettingProduct, err)
		}
		if !containsProduct(products, productID) {
			if err := s.cache.Invalidate(ctx); err != nil {
				log.Warn(ctx, msgProductCacheUnavailable, zap.Error(err))
			}
			products, err = s.loadProducts(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", errCtxSettingProduct, err)
			}
			if !containsProduct(products, productID) {
				return fmt.Errorf("%s: %w", errCtxSettingProduct, entities.ErrSupplierProductNotFound)
			}
		}
	}

	if err := s.repo.SetProduct(ctx, supplierID, productID); err != nil {
		return fmt.Errorf("%s: %w", errCtxSettingProduct, err)
	}

	log.Info(ctx, msgSupplierProductSet)
	return nil
}

// ListProducts возвращает упорядоченный список продуктов, используя кэш.
func (s *SupplierUseCaseImpl) ListProducts(ctx context.Context) ([]entities.SupplierProduct, error) {
	log := logger.Log(ctx)

	products, ok, err := s.cache.Get(ctx)
	if err != nil {
		log.Warn(ctx, msgProductCacheUnavailable, zap.Error(err))
	}
	if ok {
		return products, nil
	}

	log.Debug(ctx, msgProductCacheMiss)
	return s.loadProducts(ctx)
}

// ListSuppliers возвращает поставщиков по фильтру.
func (s *SupplierUseCaseImpl) ListSuppliers(ctx context.Context, filter entities.SupplierFilter) ([]*entities.Supplier, error) {
	suppliers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingSuppliers, err)
	}
	return suppliers, nil
}

func (s *SupplierUseCaseImpl) loadProducts(ctx context.Context) ([]entities.SupplierProduct, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingProducts, err)
	}

	if err := s.cache.Set(ctx, products); err != nil {
		logger.Log(ctx).Warn(ctx, msgProductCacheUnavailable, zap.Error(err))
	}
	return products, nil
}

func containsProduct(products []entities.SupplierProduct, id string) bool {
	return slices.ContainsFunc(products, func(p entities.SupplierProduct) bool { return p.ID == id })
}
