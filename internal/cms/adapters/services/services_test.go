package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"simplylife/internal/cms/adapters/services"
	"simplylife/internal/cms/domain/entities"
	domainservices "simplylife/internal/cms/domain/services"
)

const (
	testSecret = "test-secret-key"

	msgNoErrorValidPassword = "should not return error for valid password"
	msgHashVerifiable       = "created hash should be verifiable"
	msgTokenNotEmpty        = "token should not be empty"
)

func testTTL() map[string]time.Duration {
	return map[string]time.Duration{
		entities.CollectionAdmins:   2 * time.Hour,
		entities.CollectionAppUsers: 30 * 24 * time.Hour,
	}
}

func TestBcryptHash(t *testing.T) {
	ctx := context.Background()
	service := services.NewBcrypt(bcrypt.MinCost)

	t.Run("Успешное хэширование", func(t *testing.T) {
		hash, err := service.Hash(ctx, "motdepasse42")
		require.NoError(t, err, msgNoErrorValidPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("motdepasse42")), msgHashVerifiable)
	})

	t.Run("Пустой пароль", func(t *testing.T) {
		hash, err := service.Hash(ctx, "")
		require.ErrorIs(t, err, domainservices.ErrInvalidPassword)
		assert.Empty(t, hash)
	})

	t.Run("Соль отличает хэши одного пароля", func(t *testing.T) {
		first, err := service.Hash(ctx, "same")
		require.NoError(t, err)
		second, err := service.Hash(ctx, "same")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestBcryptCostFallback(t *testing.T) {
	hash, err := services.NewBcrypt(100).Hash(context.Background(), "password")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptVerify(t *testing.T) {
	ctx := context.Background()
	service := services.NewBcrypt(bcrypt.MinCost)
	hash, err := service.Hash(ctx, "motdepasse42")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
		wantErr  bool
	}{
		{name: "Верный пароль", password: "motdepasse42", hash: hash, want: true},
		{name: "Неверный пароль", password: "autre", hash: hash, want: false},
		{name: "Пустой хэш", password: "motdepasse42", hash: "", want: false},
		{name: "Поврежденный хэш", password: "motdepasse42", hash: "not-a-hash", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := service.Verify(ctx, tt.password, tt.hash)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestJWTGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	service := services.NewJWT(testSecret, testTTL())

	before := time.Now()
	token, expiresAt, err := service.Generate(ctx, entities.CollectionAppUsers, "u-1", "paul@example.fr")
	require.NoError(t, err)
	require.NotEmpty(t, token, msgTokenNotEmpty)
	assert.WithinDuration(t, before.Add(30*24*time.Hour), expiresAt, 5*time.Second)

	claims, err := service.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "paul@example.fr", claims.Email)
	assert.Equal(t, entities.CollectionAppUsers, claims.Collection)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestJWTGenerateErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Неизвестная коллекция", func(t *testing.T) {
		_, _, err := services.NewJWT(testSecret, testTTL()).Generate(ctx, "suppliers", "u-1", "x@example.fr")
		require.ErrorIs(t, err, services.ErrUnknownCollection)
		assert.ErrorIs(t, err, domainservices.ErrGeneratingJWTToken)
	})

	t.Run("Пустой секрет", func(t *testing.T) {
		_, _, err := services.NewJWT("", testTTL()).Generate(ctx, entities.CollectionAdmins, "a-1", "x@example.fr")
		require.ErrorIs(t, err, domainservices.ErrGeneratingJWTToken)
	})
}

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims services.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTValidateErrors(t *testing.T) {
	ctx := context.Background()
	service := services.NewJWT(testSecret, testTTL())
	now := time.Now()

	valid := func(collection string) services.Claims {
		return services.Claims{
			UserID:     "a-1",
			Email:      "root@simplylife.fr",
			Collection: collection,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	t.Run("Истекший токен", func(t *testing.T) {
		claims := valid(entities.CollectionAdmins)
		claims.IssuedAt = jwt.NewNumericDate(now.Add(-2 * time.Hour))
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Hour))

		_, err := service.Validate(ctx, signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		require.ErrorIs(t, err, domainservices.ErrExpiredJWTToken)
	})

	t.Run("Чужой секрет", func(t *testing.T) {
		token := signClaims(t, jwt.SigningMethodHS256, []byte("other-secret"), valid(entities.CollectionAdmins))
		_, err := service.Validate(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
	})

	t.Run("Неизвестная коллекция", func(t *testing.T) {
		token := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), valid("suppliers"))
		_, err := service.Validate(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
		assert.ErrorIs(t, err, services.ErrUnknownCollection)
	})

	t.Run("Алгоритм none", func(t *testing.T) {
		token := signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid(entities.CollectionAdmins))
		_, err := service.Validate(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
	})

	t.Run("Мусор вместо токена", func(t *testing.T) {
		_, err := service.Validate(ctx, "not.a.token")
		require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
	})
}

func TestServiceFactory(t *testing.T) {
	f := services.NewServiceFactory(testSecret, time.Hour, 24*time.Hour, bcrypt.MinCost)
	require.NotNil(t, f.PasswordService())
	require.NotNil(t, f.TokenService())

	_, expiresAt, err := f.TokenService().Generate(context.Background(), entities.CollectionAdmins, "a-1", "root@simplylife.fr")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
}
