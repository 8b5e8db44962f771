package sql

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fsdevblog/shortlinks/internal/models"
)

type ClickRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewClickRepo(db *gorm.DB, logger *logrus.Logger) *ClickRepo {
	return &ClickRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/click"),
	}
}

func (c *ClickRepo) Create(ctx context.Context, click *models.Click) error {
	if err := c.db.WithContext(ctx).Create(click).Error; err != nil {
		c.logger.WithError(err).Errorf("failed to create click for %s", click.Shortcode)
		return errors.Wrapf(ConvertErrorType(err), "create click: %s", err.Error())
	}
	return nil
}

func (c *ClickRepo) ListByShortcode(ctx context.Context, code string) ([]models.Click, error) {
	var clicks []models.Click
	err := c.db.WithContext(ctx).
		Where("shortcode = ?", code).
		Order("clicked_at DESC").
		Order("id DESC").
		Find(&clicks).Error
	if err != nil {
		c.logger.WithError(err).Errorf("failed to list clicks for %s", code)
		return nil, errors.Wrapf(ConvertErrorType(err), "list clicks: %s", err.Error())
	}
	return clicks, nil
}
