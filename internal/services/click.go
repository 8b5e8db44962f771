package services

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
)

// Locator определяет примерное местоположение клиента по IP. Никогда не возвращает ошибку.
type Locator interface {
	Locate(ctx context.Context, ip string) string
}

// Visit данные запроса, по которому выполняется переход.
type Visit struct {
	Referrer string
	ClientIP string
}

// ClickRecorder сохраняет событие перехода по ссылке.
type ClickRecorder struct {
	clickRepo repositories.ClickRepository
	locator   Locator
	now       func() time.Time
}

func NewClickRecorder(clickRepo repositories.ClickRepository, locator Locator, now func() time.Time) *ClickRecorder {
	return &ClickRecorder{
		clickRepo: clickRepo,
		locator:   locator,
		now:       now,
	}
}

// Record синхронно записывает один переход. Геолокация выполняется до записи,
// поэтому медленный сервис геолокации задерживает ответ.
func (r *ClickRecorder) Record(ctx context.Context, code string, visit Visit) error {
	click := models.Click{
		Shortcode: code,
		ClickedAt: r.now().UTC(),
		Referrer:  visit.Referrer,
		Location:  r.locator.Locate(ctx, visit.ClientIP),
	}
	if err := r.clickRepo.Create(ctx, &click); err != nil {
		return errors.Wrapf(ErrUnknown, "record click for %s: %s", code, err.Error())
	}
	return nil
}
