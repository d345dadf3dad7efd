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

const adminColumns = `id, email, fullname, password_hash, COALESCE(api_key, ''), created_at, updated_at`

// AdminRepository реализует repositories.AdminRepository.
type AdminRepository struct {
	pool PgxPoolInterface
}

// NewAdminRepository создает репозиторий администраторов.
func NewAdminRepository(pool PgxPoolInterface) repositories.AdminRepository {
	return &AdminRepository{pool: pool}
}

func scanAdmin(row pgx.Row) (*entities.Admin, error) {
	var a entities.Admin
	err := row.Scan(&a.ID, &a.Email, &a.Fullname, &a.PasswordHash, &a.APIKey, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) findOne(ctx context.Context, method, column, value string) (*entities.Admin, error) {
	log := logger.Log(ctx).With(zap.String("repository", "admin"), zap.String("method", method))

	query := `SELECT ` + adminColumns + ` FROM admins WHERE ` + column + ` = $1`

	admin, err := scanAdmin(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "admin not found")
			return nil, entities.ErrAdminNotFound
		}
		log.Error(ctx, "error finding admin", zap.Error(err))
		return nil, fmt.Errorf("error querying admin by %s: %w", column, err)
	}
	return admin, nil
}

// FindByID находит администратора по ID.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*entities.Admin, error) {
	return r.findOne(ctx, "FindByID", "id", id)
}

// FindByEmail находит администратора по email.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	return r.findOne(ctx, "FindByEmail", "email", email)
}

// FindByAPIKey находит администратора по API-ключу.
func (r *AdminRepository) FindByAPIKey(ctx context.Context, apiKey string) (*entities.Admin, error) {
	return r.findOne(ctx, "FindByAPIKey", "api_key", apiKey)
}

// Create создает администратора.
func (r *AdminRepository) Create(ctx context.Context, admin *entities.Admin) (*entities.Admin, error) {
	log := logger.Log(ctx).With(zap.String("repository", "admin"), zap.String("method", "Create"))

	query := `
        INSERT INTO admins (email, fullname, password_hash, api_key)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + adminColumns

	created, err := scanAdmin(r.pool.QueryRow(ctx, query,
		admin.Email,
		admin.Fullname,
		admin.PasswordHash,
		nullable(admin.APIKey),
	))
	if err != nil {
		log.Error(ctx, "error creating admin", zap.Error(err))
		return nil, fmt.Errorf("error creating admin: %w", err)
	}
	return created, nil
}

// List возвращает администраторов по email.
func (r *AdminRepository) List(ctx context.Context, limit, offset int) ([]*entities.Admin, error) {
	log := logger.Log(ctx).With(zap.String("repository", "admin"), zap.String("method", "List"))

	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY email LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		log.Error(ctx, "error listing admins", zap.Error(err))
		return nil, fmt.Errorf("error listing admins: %w", err)
	}
	defer rows.Close()

	admins := make([]*entities.Admin, 0)
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning admin: %w", err)
		}
		admins = append(admins, admin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admins: %w", err)
	}
	return admins, nil
}

// Count возвращает число администраторов.
func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting admins: %w", err)
	}
	return count, nil
}

// Update обновляет администратора.
func (r *AdminRepository) Update(ctx context.Context, admin *entities.Admin) (*entities.Admin, error) {
	log := logger.Log(ctx).With(zap.String("repository", "admin"), zap.String("method", "Update"))

	query := `
        UPDATE admins
        SET email = $2, fullname = $3, password_hash = $4, api_key = $5, updated_at = now()
        WHERE id = $1
        RETURNING ` + adminColumns

	updated, err := scanAdmin(r.pool.QueryRow(ctx, query,
		admin.ID,
		admin.Email,
		admin.Fullname,
		admin.PasswordHash,
		nullable(admin.APIKey),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrAdminNotFound
		}
		log.Error(ctx, "error updating admin", zap.Error(err))
		return nil, fmt.Errorf("error updating admin: %w", err)
	}
	return updated, nil
}

// Delete удаляет администратора.
func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "admin"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting admin", zap.Error(err))
		return fmt.Errorf("error deleting admin: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrAdminNotFound
	}
	return nil
}
