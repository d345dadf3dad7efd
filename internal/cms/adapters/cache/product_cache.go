package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"simplylife/internal/cms/domain/entities"
	svc "simplylife/internal/cms/ports/services"
)

const productsPrefix = "supplier_products"

// ProductCache хранит список продуктов поставщиков в Redis в виде JSON.
type ProductCache struct {
	store store
	ttl   time.Duration
}

// NewProductCache создает кэш продуктов. Нулевой ttl означает хранение без срока.
func NewProductCache(client redis.Cmdable, ttl time.Duration) svc.ProductCache {
	return &ProductCache{store: newStore(client, productsPrefix), ttl: ttl}
}

// Get возвращает список из кэша; ok равно false при промахе.
func (c *ProductCache) Get(ctx context.Context) ([]entities.SupplierProduct, bool, error) {
	raw, ok, err := c.store.get(ctx, c.store.key("all"))
	if err != nil || !ok {
		return nil, false, err
	}

	var products []entities.SupplierProduct
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, false, fmt.Errorf("decoding cached products: %w", err)
	}
	return products, true, nil
}

// Set сохраняет список продуктов.
func (c *ProductCache) Set(ctx context.Context, products []entities.SupplierProduct) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encoding products: %w", err)
	}
	return c.store.set(ctx, c.store.key("all"), raw, c.ttl)
}

// Invalidate удаляет список из кэша.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	return c.store.delete(ctx, c.store.key("all"))
}
