// Package postgres реализует репозитории CMS поверх PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"simplylife/internal/cms/ports/repositories"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиториями.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// RepositoryFactory создает все репозитории CMS.
type RepositoryFactory struct {
	adminRepo    repositories.AdminRepository
	appUserRepo  repositories.AppUserRepository
	supplierRepo repositories.SupplierRepository
}

// NewRepositoryFactory создает фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		adminRepo:    NewAdminRepository(pool),
		appUserRepo:  NewAppUserRepository(pool),
		supplierRepo: NewSupplierRepository(pool),
	}
}

// AdminRepository возвращает репозиторий администраторов.
func (f *RepositoryFactory) AdminRepository() repositories.AdminRepository {
	return f.adminRepo
}

// AppUserRepository возвращает репозиторий пользователей приложения.
func (f *RepositoryFactory) AppUserRepository() repositories.AppUserRepository {
	return f.appUserRepo
}

// SupplierRepository возвращает репозиторий поставщиков.
func (f *RepositoryFactory) SupplierRepository() repositories.SupplierRepository {
	return f.supplierRepo
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
