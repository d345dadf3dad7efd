package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/ports/repositories"
	"simplylife/pkg/logger"
)

const (
	queryProductAssociation = `
        SELECT p.name, p.id, COALESCE(c.name, ''), COALESCE(c.id::text, '')
        FROM supplier_products p
        JOIN supplier_products_rels r ON r.parent_id = p.id
        LEFT JOIN supplier_categories_rels cr ON cr.supplier_products_id = p.id
        LEFT JOIN supplier_categories c ON c.id = cr.parent_id
        WHERE r.suppliers_id = $1
        LIMIT 1`

	queryListProducts = `SELECT id, name FROM supplier_products ORDER BY name`

	queryDeleteSupplierRel = `DELETE FROM supplier_products_rels WHERE suppliers_id = $1 AND path = 'suppliers'`
	queryInsertSupplierRel = `
        INSERT INTO supplier_products_rels (parent_id, path, suppliers_id, "order")
        VALUES ($1, 'suppliers', $2, 1)`

	querySuppliers = `
        SELECT s.id, s.name, s.selection, s.epargne,
               COALESCE(s.enveloppe, ''), COALESCE(s.fond, ''), COALESCE(s.other_information, ''),
               s.created_at, s.updated_at
        FROM suppliers s`

	conditionSCPI = `
        WHERE EXISTS (
            SELECT 1
            FROM supplier_products_rels r
            JOIN supplier_categories_rels cr ON cr.supplier_products_id = r.parent_id
            WHERE r.suppliers_id = s.id AND cr.parent_id = $1
        )`
)

// SupplierRepository реализует repositories.SupplierRepository.
type SupplierRepository struct {
	pool PgxPoolInterface
}

// NewSupplierRepository создает репозиторий поставщиков.
func NewSupplierRepository(pool PgxPoolInterface) repositories.SupplierRepository {
	return &SupplierRepository{pool: pool}
}

// FindProductAssociation возвращает первый связанный с поставщиком продукт и его категорию.
func (r *SupplierRepository) FindProductAssociation(ctx context.Context, supplierID string) (*entities.ProductAssociation, error) {
	log := logger.Log(ctx).With(zap.String("repository", "supplier"), zap.String("method", "FindProductAssociation"))

	var a entities.ProductAssociation
	err := r.pool.QueryRow(ctx, queryProductAssociation, supplierID).
		Scan(&a.ProductName, &a.ProductID, &a.CategoryName, &a.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		log.Error(ctx, "error finding product association", zap.Error(err))
		return nil, fmt.Errorf("error querying product association: %w", err)
	}
	return &a, nil
}

// ListProducts возвращает продукты, упорядоченные по имени.
func (r *SupplierRepository) ListProducts(ctx context.Context) ([]entities.SupplierProduct, error) {
	rows, err := r.pool.Query(ctx, queryListProducts)
	if err != nil {
		return nil, fmt.Errorf("error listing supplier products: %w", err)
	}
	defer rows.Close()

	products := make([]entities.SupplierProduct, 0)
	for rows.Next() {
		var p entities.SupplierProduct
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("error scanning supplier product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier products: %w", err)
	}
	return products, nil
}

// SetProduct заменяет связь поставщика с продуктом в одной транзакции.
func (r *SupplierRepository) SetProduct(ctx context.Context, supplierID, productID string) (err error) {
	log := logger.Log(ctx).With(zap.String("repository", "supplier"), zap.String("method", "SetProduct"))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Error(ctx, "error rolling back transaction", zap.Error(rbErr))
			}
		}
	}()

	if _, err = tx.Exec(ctx, queryDeleteSupplierRel, supplierID); err != nil {
		return fmt.Errorf("error removing supplier product: %w", err)
	}
	if productID != "" {
		if _, err = tx.Exec(ctx, queryInsertSupplierRel, productID, supplierID); err != nil {
			return fmt.Errorf("error linking supplier product: %w", err)
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing supplier product: %w", err)
	}
	return nil
}

// List возвращает поставщиков по фильтру, упорядоченных по имени.
func (r *SupplierRepository) List(ctx context.Context, filter entities.SupplierFilter) ([]*entities.Supplier, error) {
	log := logger.Log(ctx).With(zap.String("repository", "supplier"), zap.String("method", "List"))

	query := querySuppliers
	var args []interface{}
	switch filter {
	case entities.FilterSelection:
		query += ` WHERE s.selection = true`
	case entities.FilterEpargne:
		query += ` WHERE s.epargne = true`
	case entities.FilterSCPI:
		query += conditionSCPI
		args = append(args, entities.CategorySCPI)
	}
	query += ` ORDER BY s.name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error listing suppliers", zap.Error(err), zap.String("filter", string(filter)))
		return nil, fmt.Errorf("error listing suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := make([]*entities.Supplier, 0)
	for rows.Next() {
		var s entities.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Selection, &s.Epargne, &s.Enveloppe, &s.Fond, &s.OtherInformation, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning supplier: %w", err)
		}
		suppliers = append(suppliers, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suppliers: %w", err)
	}
	return suppliers, nil
}
