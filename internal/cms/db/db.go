// Package db инициализирует базу данных CMS: применяет миграции и открывает пул соединений.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"simplylife/internal/cms/config"
	"simplylife/pkg/db/postgres"
	"simplylife/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing CMS database"
	LogDBInitialized     = "CMS database initialized successfully"
	LogMigrationStarting = "starting database migrations for CMS service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply CMS database migrations"
	ErrDBConnection = "failed to connect to CMS database"
)

// DB представляет соединение с базой данных CMS.
type DB struct {
	database *postgres.Database
}

// New инициализирует соединение с базой данных, предварительно применив миграции.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	source, err := postgres.MigrationsSource(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", source))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), source); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}

// Probe выполняет пробный запрос и возвращает его длительность.
func (db *DB) Probe(ctx context.Context) (time.Duration, error) {
	return db.database.Probe(ctx)
}
