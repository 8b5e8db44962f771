package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Pinger проверяет доступность хранилища.
type Pinger struct {
	conn *gorm.DB
}

func NewPinger(conn *gorm.DB) *Pinger {
	return &Pinger{conn: conn}
}

func (p *Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.conn.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		return fmt.Errorf("ping database: %w", pingErr)
	}
	return nil
}
