package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"CMS_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"CMS_HTTP_PORT" env-default:"3000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"CMS_HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"CMS_HTTP_WRITE_TIMEOUT" env-default:"30s"`
	CORSOrigins  []string      `yaml:"cors_origins" env:"CMS_HTTP_CORS_ORIGINS" env-default:"*" env-separator:","`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
