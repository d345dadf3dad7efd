package config

import (
	"fmt"
	"time"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host       string        `yaml:"host" env:"CMS_REDIS_HOST" env-default:"localhost"`
	Port       int           `yaml:"port" env:"CMS_REDIS_PORT" env-default:"6379"`
	Password   string        `yaml:"password" env:"CMS_REDIS_PASSWORD" env-default:""`
	DB         int           `yaml:"db" env:"CMS_REDIS_DB" env-default:"0"`
	PoolSize   int           `yaml:"pool_size" env:"CMS_REDIS_POOL_SIZE" env-default:"10"`
	Timeout    time.Duration `yaml:"timeout" env:"CMS_REDIS_TIMEOUT" env-default:"5s"`
	ProductTTL time.Duration `yaml:"product_ttl" env:"CMS_REDIS_PRODUCT_TTL" env-default:"10m"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetHost возвращает хост Redis.
func (c *RedisConfig) GetHost() string { return c.Host }

// GetPort возвращает порт Redis.
func (c *RedisConfig) GetPort() int { return c.Port }

// GetPassword возвращает пароль Redis.
func (c *RedisConfig) GetPassword() string { return c.Password }

// GetDB возвращает номер базы Redis.
func (c *RedisConfig) GetDB() int { return c.DB }

// GetPoolSize возвращает размер пула соединений.
func (c *RedisConfig) GetPoolSize() int { return c.PoolSize }

// GetTimeout возвращает таймаут операций.
func (c *RedisConfig) GetTimeout() time.Duration { return c.Timeout }
