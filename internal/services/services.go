package services

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/repositories/sql"
)

type Services struct {
	LinkService *LinkService
	PingService *PingService
}

// Factory собирает сервисный слой поверх открытого хранилища.
func Factory(conn *gorm.DB, locator Locator, logger *logrus.Logger, opts ...func(*LinkOptions)) *Services {
	urlRepo := sql.NewURLRepo(conn, logger)
	clickRepo := sql.NewClickRepo(conn, logger)
	return &Services{
		LinkService: NewLinkService(urlRepo, clickRepo, locator, logger, opts...),
		PingService: NewPingService(db.NewPinger(conn)),
	}
}
