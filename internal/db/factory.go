package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fsdevblog/shortlinks/internal/models"
)

type StorageType string

const (
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypePostgres StorageType = "postgres"
)

type FactoryConfig struct {
	StorageType  StorageType
	PostgresDSN  *string
	SqliteDBPath *string
}

// NewConnectionFactory открывает хранилище нужного типа и применяет схему.
// Возвращаемый *gorm.DB держит пул соединений: каждая операция репозитория берет
// соединение из пула и возвращает его по завершении запроса или транзакции.
func NewConnectionFactory(ctx context.Context, config FactoryConfig) (*gorm.DB, error) {
	var (
		conn    *gorm.DB
		connErr error
	)
	switch config.StorageType {
	case StorageTypeSQLite:
		if config.SqliteDBPath == nil || *config.SqliteDBPath == "" {
			return nil, errors.New("sqlite db path is empty")
		}
		conn, connErr = NewSQLite(*config.SqliteDBPath)
	case StorageTypePostgres:
		if config.PostgresDSN == nil || *config.PostgresDSN == "" {
			return nil, errors.New("postgres dsn is empty")
		}
		conn, connErr = NewPostgres(*config.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.StorageType)
	}
	if connErr != nil {
		return nil, connErr
	}

	if migrateErr := migrate(ctx, conn); migrateErr != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", migrateErr)
	}
	return conn, nil
}

func migrate(ctx context.Context, conn *gorm.DB) error {
	if err := conn.WithContext(ctx).AutoMigrate(&models.ShortURL{}, &models.Click{}); err != nil {
		return fmt.Errorf("migrating sql: %w", err)
	}
	return nil
}

// Close закрывает пул соединений.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	if closeErr := sqlDB.Close(); closeErr != nil {
		return fmt.Errorf("close sql db: %w", closeErr)
	}
	return nil
}
