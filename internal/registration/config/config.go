// Package config содержит конфигурацию клиента завершения регистрации.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"simplylife/pkg/i18n"
	"simplylife/pkg/logger"
)

// Сообщения конфигурации.
const (
	LogConfigLoaded     = "registration client configuration loaded"
	ErrFailedLoadConfig = "failed to load registration client configuration"
)

// Config - настройки клиента, читаются из переменных с префиксом REGISTRATION_.
type Config struct {
	ServerURL string        `yaml:"server_url" env:"REGISTRATION_SERVER_URL" env-default:"http://localhost:3000"`
	Locale    string        `yaml:"locale" env:"REGISTRATION_LOCALE" env-default:"fr"`
	Timeout   time.Duration `yaml:"timeout" env:"REGISTRATION_TIMEOUT" env-default:"30s"`

	LoggerMode  string `yaml:"logger_mode" env:"REGISTRATION_LOGGER_MODE" env-default:"development"`
	LoggerLevel string `yaml:"logger_level" env:"REGISTRATION_LOGGER_LEVEL" env-default:"warn"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Debug(ctx, LogConfigLoaded,
		zap.String("server_url", cfg.ServerURL),
		zap.String("locale", cfg.Locale),
		zap.Duration("timeout", cfg.Timeout))

	return &cfg, nil
}

// GetLocale возвращает локаль интерфейса.
func (c *Config) GetLocale() i18n.Locale {
	return i18n.Parse(c.Locale)
}

// GetEnvironment возвращает режим логгера.
func (c *Config) GetEnvironment() logger.Environment {
	if c.LoggerMode == "production" {
		return logger.Production
	}
	return logger.Development
}
