package repositories

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
)

// URLRepository описывает хранилище коротких ссылок.
type URLRepository interface {
	// Create вставляет запись. Если код занят - ErrDuplicateKey.
	Create(ctx context.Context, sURL *models.ShortURL) error
	// SetShortcode присваивает код записи, у которой кода ещё нет.
	SetShortcode(ctx context.Context, id uint, code string) error
	// GetByShortcode находит запись по коду, ErrNotFound если её нет.
	GetByShortcode(ctx context.Context, code string) (*models.ShortURL, error)
	// Transaction выполняет fn в одной транзакции. Ошибка fn откатывает транзакцию.
	Transaction(ctx context.Context, fn func(tx URLRepository) error) error
}

// ClickRepository описывает хранилище событий переходов.
type ClickRepository interface {
	Create(ctx context.Context, click *models.Click) error
	// ListByShortcode возвращает все переходы по коду, последние первыми.
	ListByShortcode(ctx context.Context, code string) ([]models.Click, error)
}
