// Package config содержит конфигурацию CMS-сервиса Simply Life.
package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"simplylife/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "loading CMS service configuration"
	LogConfigLoaded     = "configuration loaded successfully"
	ErrFailedLoadConfig = "failed to load configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Postgres     PostgresConfig     `yaml:"postgres"`
	Redis        RedisConfig        `yaml:"redis"`
	Logging      LoggingConfig      `yaml:"logging"`
	Shutdown     ShutdownConfig     `yaml:"shutdown"`
	Upload       UploadConfig       `yaml:"upload"`
	Email        EmailConfig        `yaml:"email"`
	Auth         AuthConfig         `yaml:"auth"`
	Localization LocalizationConfig `yaml:"localization"`

	ServerURL     string `yaml:"server_url" env:"CMS_SERVER_URL" env-default:"http://localhost:3000"`
	Region        string `yaml:"region" env:"CMS_REGION" env-default:"local"`
	MigrationsDir string `yaml:"migrations_dir" env:"CMS_MIGRATIONS_DIR" env-default:"migrations/cms"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("server_url", cfg.ServerURL),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.String("upload_driver", cfg.Upload.Driver),
		zap.Int64("upload_max_file_size", cfg.Upload.MaxFileSize),
		zap.String("default_locale", cfg.Localization.DefaultLocale),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return &cfg, nil
}
