package sql

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
)

type URLRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewURLRepo(db *gorm.DB, logger *logrus.Logger) *URLRepo {
	return &URLRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/url"),
	}
}

func (u *URLRepo) Create(ctx context.Context, sURL *models.ShortURL) error {
	if err := u.db.WithContext(ctx).Create(sURL).Error; err != nil {
		converted := ConvertErrorType(err)
		if errors.Is(converted, repositories.ErrDuplicateKey) {
			return converted
		}
		u.logger.WithError(err).Errorf("failed to create record %+v", *sURL)
		return errors.Wrapf(converted, "create record: %s", err.Error())
	}
	return nil
}

// SetShortcode выполняется в отдельной точке сохранения, поэтому нарушение уникальности
// не ломает внешнюю транзакцию и код можно попробовать присвоить снова.
func (u *URLRepo) SetShortcode(ctx context.Context, id uint, code string) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ShortURL{}).
			Where("id = ? AND shortcode IS NULL", id).
			Update("shortcode", code)
		if res.Error != nil {
			return res.Error //nolint:wrapcheck
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		converted := ConvertErrorType(err)
		if errors.Is(converted, repositories.ErrUnknown) {
			u.logger.WithError(err).Errorf("failed to set shortcode %s for id %d", code, id)
		}
		return errors.Wrapf(converted, "set shortcode %s for id %d", code, id)
	}
	return nil
}

func (u *URLRepo) GetByShortcode(ctx context.Context, code string) (*models.ShortURL, error) {
	var sURL models.ShortURL
	if err := u.db.WithContext(ctx).Where("shortcode = ?", code).First(&sURL).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		u.logger.WithError(err).Errorf("failed to get record by shortcode %s", code)
		return nil, errors.Wrapf(repositories.ErrUnknown, "get record by shortcode %s: %s", code, err.Error())
	}
	return &sURL, nil
}

func (u *URLRepo) Transaction(ctx context.Context, fn func(tx repositories.URLRepository) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error { //nolint:wrapcheck
		return fn(u.withTx(tx))
	})
}

// withTx вспомогательный метод для работы с sql транзакциями.
func (u *URLRepo) withTx(tx *gorm.DB) *URLRepo {
	return &URLRepo{db: tx, logger: u.logger}
}
