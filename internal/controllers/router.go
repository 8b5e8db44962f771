package controllers

import (
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fsdevblog/shortlinks/internal/controllers/middlewares"
)

type RouterParams struct {
	URLService     ShortURLService
	PingService    ConnectionChecker
	BaseURL        *url.URL
	TrustedProxies []string // nil - не доверять X-Forwarded-For
	Logger         *zap.Logger
}

// SetupRouter собирает gin роутер со всеми маршрутами сервиса.
func SetupRouter(params RouterParams) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(params.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware(params.Logger))
	r.Use(gin.Recovery())
	r.Use(middlewares.GzipMiddleware())

	healthController := NewHealthController(params.PingService)
	shortURLController := NewShortURLController(params.URLService, params.BaseURL)

	r.GET("/healthz", healthController.Healthz)
	r.GET("/ping", healthController.Ping)

	r.POST("/shorturls", shortURLController.Create)
	r.GET("/shorturls/:code", shortURLController.Stats)
	r.GET("/:code", shortURLController.Redirect)
	return r, nil
}
