package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgres создает подключение к PostgreSQL.
//
// Параметры:
//   - dsn: строка подключения к базе данных (Data Source Name)
//
// Возвращает:
//   - *gorm.DB: подключение поверх пула pgx
//   - error: ошибка создания подключения
func NewPostgres(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}
	return conn, nil
}
