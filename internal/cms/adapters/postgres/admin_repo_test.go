package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplylife/internal/cms/adapters/postgres"
	"simplylife/internal/cms/domain/entities"
	"simplylife/pkg/logger"
)

var errDB = errors.New("database connection error")

var adminCols = []string{"id", "email", "fullname", "password_hash", "api_key", "created_at", "updated_at"}

func testContext(t *testing.T) context.Context {
	t.Helper()
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), log)
}

func TestAdminRepository_FindByEmail(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Администратор найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM admins WHERE email = \\$1").
			WithArgs("claire@simplylife.fr").
			WillReturnRows(pgxmock.NewRows(adminCols).
				AddRow("a-1", "claire@simplylife.fr", "Claire", "hash", "", now, now))

		admin, err := postgres.NewAdminRepository(mock).FindByEmail(ctx, "claire@simplylife.fr")
		require.NoError(t, err)
		assert.Equal(t, "a-1", admin.ID)
		assert.Equal(t, "Claire", admin.Fullname)
		assert.Empty(t, admin.APIKey)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Администратор не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM admins WHERE email = \\$1").
			WithArgs("ghost@simplylife.fr").
			WillReturnError(pgx.ErrNoRows)

		_, err = postgres.NewAdminRepository(mock).FindByEmail(ctx, "ghost@simplylife.fr")
		require.ErrorIs(t, err, entities.ErrAdminNotFound)
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM admins WHERE email = \\$1").
			WithArgs("claire@simplylife.fr").
			WillReturnError(errDB)

		_, err = postgres.NewAdminRepository(mock).FindByEmail(ctx, "claire@simplylife.fr")
		require.ErrorIs(t, err, errDB)
		assert.NotErrorIs(t, err, entities.ErrAdminNotFound)
	})
}

func TestAdminRepository_FindByAPIKey(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM admins WHERE api_key = \\$1").
		WithArgs("key-1").
		WillReturnRows(pgxmock.NewRows(adminCols).
			AddRow("a-2", "bot@simplylife.fr", "Bot", "hash", "key-1", now, now))

	admin, err := postgres.NewAdminRepository(mock).FindByAPIKey(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "key-1", admin.APIKey)
}

func TestAdminRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO admins .+").
		WithArgs("root@simplylife.fr", "Root", "hash", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows(adminCols).
			AddRow("a-1", "root@simplylife.fr", "Root", "hash", "", now, now))

	created, err := postgres.NewAdminRepository(mock).Create(ctx, &entities.Admin{
		Email:        "root@simplylife.fr",
		Fullname:     "Root",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Equal(t, "a-1", created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_ListAndCount(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM admins ORDER BY email LIMIT \\$1 OFFSET \\$2").
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(adminCols).
			AddRow("a-1", "a@simplylife.fr", "A", "h", "", now, now).
			AddRow("a-2", "b@simplylife.fr", "B", "h", "k", now, now))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM admins").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	repo := postgres.NewAdminRepository(mock)
	admins, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_Update(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()
	key := "key-9"

	t.Run("Успешное обновление", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE admins .+").
			WithArgs("a-1", "new@simplylife.fr", "New", "hash", &key).
			WillReturnRows(pgxmock.NewRows(adminCols).
				AddRow("a-1", "new@simplylife.fr", "New", "hash", key, now, now))

		updated, err := postgres.NewAdminRepository(mock).Update(ctx, &entities.Admin{
			ID: "a-1", Email: "new@simplylife.fr", Fullname: "New", PasswordHash: "hash", APIKey: key,
		})
		require.NoError(t, err)
		assert.Equal(t, "new@simplylife.fr", updated.Email)
	})

	t.Run("Администратор не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE admins .+").
			WithArgs("missing", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		_, err = postgres.NewAdminRepository(mock).Update(ctx, &entities.Admin{ID: "missing"})
		require.ErrorIs(t, err, entities.ErrAdminNotFound)
	})
}

func TestAdminRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("Успешное удаление", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM admins WHERE id = \\$1").
			WithArgs("a-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewAdminRepository(mock).Delete(ctx, "a-1"))
	})

	t.Run("Администратор не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM admins WHERE id = \\$1").
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err = postgres.NewAdminRepository(mock).Delete(ctx, "missing")
		require.ErrorIs(t, err, entities.ErrAdminNotFound)
	})
}

func TestRepositoryFactory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	f := postgres.NewRepositoryFactory(mock)
	assert.NotNil(t, f.AdminRepository())
	assert.NotNil(t, f.AppUserRepository())
	assert.NotNil(t, f.SupplierRepository())
}
