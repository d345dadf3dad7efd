package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplylife/internal/cms/config"
	"simplylife/pkg/i18n"
	"simplylife/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	ctx := logger.NewContext(context.Background(), logger.NewNop())

	cfg, err := config.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.GetAddress())
	assert.Equal(t, "http://localhost:3000", cfg.ServerURL)
	assert.Equal(t, int64(50_000_000), cfg.Upload.MaxFileSize)
	assert.Equal(t, config.UploadDriverLocal, cfg.Upload.Driver)
	assert.Equal(t, "onboarding@resend.dev", cfg.Email.FromAddress)
	assert.Equal(t, "Simply Life Admin <onboarding@resend.dev>", cfg.Email.From())
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.AdminTokenTTL)
	assert.Equal(t, 60*24*time.Hour, cfg.Auth.AppUserTokenTTL)
	assert.Equal(t, 3*24*time.Hour, cfg.Auth.ForgotPasswordTTL)
	assert.Equal(t, 4, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, i18n.French, cfg.Localization.Default())
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CMS_HTTP_PORT", "8081")
	t.Setenv("CMS_SERVER_URL", "https://admin.simply-life.fr")
	t.Setenv("CMS_AUTH_MAX_LOGIN_ATTEMPTS", "6")
	t.Setenv("CMS_DEFAULT_LOCALE", "en")
	ctx := logger.NewContext(context.Background(), logger.NewNop())

	cfg, err := config.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "https://admin.simply-life.fr", cfg.ServerURL)
	assert.Equal(t, 6, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, i18n.English, cfg.Localization.Default())
}

func TestLoadRejectsInvalidValue(t *testing.T) {
	t.Setenv("CMS_HTTP_PORT", "not-a-port")
	ctx := logger.NewContext(context.Background(), logger.NewNop())

	cfg, err := config.Load(ctx)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), config.ErrFailedLoadConfig)
}

func TestPostgresConfig(t *testing.T) {
	p := config.PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "cms", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=cms sslmode=disable", p.GetDSN())
	assert.Equal(t, "postgres://u:p@db:5432/cms?sslmode=disable", p.GetConnectionURL())
	assert.Equal(t, "PostgreSQL", p.Provider())

	p.Host = "aws-0-eu.pooler.supabase.com"
	assert.Equal(t, "Supabase", p.Provider())
}

func TestUploadBodyLimit(t *testing.T) {
	u := config.UploadConfig{MaxFileSize: 50_000_000}
	assert.Greater(t, u.BodyLimit(), 50_000_000)
}
