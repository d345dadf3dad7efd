// Package redis предоставляет общую реализацию клиента Redis.
package redis

import (
	"fmt"
	"time"
)

// Значения по умолчанию для Redis.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 6379
	DefaultDB       = 0
	DefaultPoolSize = 10
	DefaultTimeout  = 5 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// Address возвращает адрес в формате host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		DB:       DefaultDB,
		PoolSize: DefaultPoolSize,
		Timeout:  DefaultTimeout,
	}
}

// Settings описывает источник настроек Redis из конфигурации сервиса.
type Settings interface {
	GetHost() string
	GetPort() int
	GetPassword() string
	GetDB() int
	GetPoolSize() int
	GetTimeout() time.Duration
}

// NewConfig создает конфигурацию Redis из настроек сервиса.
func NewConfig(s Settings) *Config {
	cfg := &Config{
		Host:     s.GetHost(),
		Port:     s.GetPort(),
		Password: s.GetPassword(),
		DB:       s.GetDB(),
		PoolSize: s.GetPoolSize(),
		Timeout:  s.GetTimeout(),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}
	return cfg
}
