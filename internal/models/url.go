package models

import "time"

// ShortURL модель хранения короткой ссылки (таблица `shorturls`).
//
// Shortcode равен nil между вставкой строки и присвоением сгенерированного кода,
// после присвоения не меняется.
type ShortURL struct {
	ID          uint      `gorm:"primaryKey"`
	OriginalURL string    `gorm:"not null"`
	Shortcode   *string   `gorm:"uniqueIndex"`
	CreatedAt   time.Time `gorm:"not null"`
	Expiry      time.Time `gorm:"not null"`
}

// TableName имя таблицы для gorm.
func (ShortURL) TableName() string {
	return "shorturls"
}

// IsExpired возвращает true, если срок жизни ссылки истек к моменту now.
func (s *ShortURL) IsExpired(now time.Time) bool {
	return s.Expiry.Before(now)
}

// Code возвращает код ссылки или пустую строку, если код ещё не присвоен.
func (s *ShortURL) Code() string {
	if s.Shortcode == nil {
		return ""
	}
	return *s.Shortcode
}
