package config

import (
	"fmt"
	"strings"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"CMS_POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"CMS_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"CMS_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"CMS_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"CMS_POSTGRES_DB" env-default:"simplylife"`
	SSLMode  string `yaml:"ssl_mode" env:"CMS_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn  int    `yaml:"min_conn" env:"CMS_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"CMS_POSTGRES_MAX_CONN" env-default:"10"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// Provider возвращает название провайдера базы данных для отчета о задержке.
func (p *PostgresConfig) Provider() string {
	if strings.Contains(p.Host, "supabase") {
		return "Supabase"
	}
	return "PostgreSQL"
}
