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

// Даты хранятся в колонках DATE и передаются как YYYY-MM-DD.
const appUserColumns = `id, email, role, lastname,
        COALESCE(firstname, ''), COALESCE(cabinet, ''), COALESCE(adress_cabinet, ''),
        COALESCE(to_char(birthday, 'YYYY-MM-DD'), ''), COALESCE(to_char(entry_date, 'YYYY-MM-DD'), ''),
        rgpd, COALESCE(phone, ''), COALESCE(image_path, ''), COALESCE(password_hash, ''),
        registration_completed, COALESCE(reset_token, ''), reset_token_expires_at,
        created_at, updated_at`

// AppUserRepository реализует repositories.AppUserRepository.
type AppUserRepository struct {
	pool PgxPoolInterface
}

// NewAppUserRepository создает репозиторий пользователей приложения.
func NewAppUserRepository(pool PgxPoolInterface) repositories.AppUserRepository {
	return &AppUserRepository{pool: pool}
}

func scanAppUser(row pgx.Row) (*entities.AppUser, error) {
	var u entities.AppUser
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Role,
		&u.Lastname,
		&u.Firstname,
		&u.Cabinet,
		&u.AdressCabinet,
		&u.Birthday,
		&u.EntryDate,
		&u.RGPD,
		&u.Phone,
		&u.ImagePath,
		&u.PasswordHash,
		&u.RegistrationCompleted,
		&u.ResetToken,
		&u.ResetTokenExpiresAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AppUserRepository) findOne(ctx context.Context, method, column, value string) (*entities.AppUser, error) {
	log := logger.Log(ctx).With(zap.String("repository", "app_user"), zap.String("method", method))

	query := `SELECT ` + appUserColumns + ` FROM app_users WHERE ` + column + ` = $1`

	user, err := scanAppUser(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "app user not found")
			return nil, entities.ErrAppUserNotFound
		}
		log.Error(ctx, "error finding app user", zap.Error(err))
		return nil, fmt.Errorf("error querying app user by %s: %w", column, err)
	}
	return user, nil
}

// FindByID находит пользователя по ID.
func (r *AppUserRepository) FindByID(ctx context.Context, id string) (*entities.AppUser, error) {
	return r.findOne(ctx, "FindByID", "id", id)
}

// FindByEmail находит пользователя по email.
func (r *AppUserRepository) FindByEmail(ctx context.Context, email string) (*entities.AppUser, error) {
	return r.findOne(ctx, "FindByEmail", "email", email)
}

// FindByResetToken находит пользователя по токену сброса пароля.
func (r *AppUserRepository) FindByResetToken(ctx context.Context, token string) (*entities.AppUser, error) {
	return r.findOne(ctx, "FindByResetToken", "reset_token", token)
}

// Create создает пользователя приложения.
func (r *AppUserRepository) Create(ctx context.Context, user *entities.AppUser) (*entities.AppUser, error) {
	log := logger.Log(ctx).With(zap.String("repository", "app_user"), zap.String("method", "Create"))

	query := `
        INSERT INTO app_users (email, role, lastname, firstname, rgpd, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + appUserColumns

	created, err := scanAppUser(r.pool.QueryRow(ctx, query,
		user.Email,
		user.Role,
		user.Lastname,
		nullable(user.Firstname),
		user.RGPD,
		nullable(user.PasswordHash),
	))
	if err != nil {
		log.Error(ctx, "error creating app user", zap.Error(err))
		return nil, fmt.Errorf("error creating app user: %w", err)
	}
	return created, nil
}

// List возвращает пользователей, начиная с последних созданных.
func (r *AppUserRepository) List(ctx context.Context, limit, offset int) ([]*entities.AppUser, error) {
	log := logger.Log(ctx).With(zap.String("repository", "app_user"), zap.String("method", "List"))

	query := `SELECT ` + appUserColumns + ` FROM app_users ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		log.Error(ctx, "error listing app users", zap.Error(err))
		return nil, fmt.Errorf("error listing app users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.AppUser, 0)
	for rows.Next() {
		user, err := scanAppUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning app user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating app users: %w", err)
	}
	return users, nil
}

// Count возвращает число пользователей.
func (r *AppUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM app_users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting app users: %w", err)
	}
	return count, nil
}

// Update сохраняет все изменяемые поля пользователя.
func (r *AppUserRepository) Update(ctx context.Context, user *entities.AppUser) (*entities.AppUser, error) {
	log := logger.Log(ctx).With(zap.String("repository", "app_user"), zap.String("method", "Update"))

	query := `
        UPDATE app_users
        SET email = $2, role = $3, lastname = $4, firstname = $5, cabinet = $6, adress_cabinet = $7,
            birthday = NULLIF($8, '')::date, entry_date = NULLIF($9, '')::date, rgpd = $10, phone = $11,
            image_path = $12, password_hash = $13, registration_completed = $14,
            reset_token = $15, reset_token_expires_at = $16, updated_at = now()
        WHERE id = $1
        RETURNING ` + appUserColumns

	updated, err := scanAppUser(r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Role,
		user.Lastname,
		nullable(user.Firstname),
		nullable(user.Cabinet),
		nullable(user.AdressCabinet),
		user.Birthday,
		user.EntryDate,
		user.RGPD,
		nullable(user.Phone),
		nullable(user.ImagePath),
		nullable(user.PasswordHash),
		user.RegistrationCompleted,
		nullable(user.ResetToken),
		user.ResetTokenExpiresAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrAppUserNotFound
		}
		log.Error(ctx, "error updating app user", zap.Error(err))
		return nil, fmt.Errorf("error updating app user: %w", err)
	}
	return updated, nil
}

// Delete удаляет пользователя.
func (r *AppUserRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "app_user"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM app_users WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting app user", zap.Error(err))
		return fmt.Errorf("error deleting app user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrAppUserNotFound
	}
	return nil
}
