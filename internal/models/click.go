package models

import "time"

// Значения Location, не требующие внешнего запроса.
const (
	LocationLocal   = "Local"
	LocationUnknown = "Unknown"
)

// Click событие перехода по короткой ссылке (таблица `clicks`).
// Связь с shorturls по коду не закреплена внешним ключом.
type Click struct {
	ID        uint      `gorm:"primaryKey"`
	Shortcode string    `gorm:"not null;index"`
	ClickedAt time.Time `gorm:"not null"`
	Referrer  string
	Location  string
}

// TableName имя таблицы для gorm.
func (Click) TableName() string {
	return "clicks"
}
