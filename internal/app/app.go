package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fsdevblog/shortlinks/internal/config"
	"github.com/fsdevblog/shortlinks/internal/controllers"
	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/geo"
	"github.com/fsdevblog/shortlinks/internal/logs"
	"github.com/fsdevblog/shortlinks/internal/services"
)

const (
	ReadTimeout       = 5 * time.Second
	WriteTimeout      = 10 * time.Second
	IdleTimeout       = 120 * time.Second
	ReadHeaderTimeout = 2 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

type App struct {
	config    config.Config
	conn      *gorm.DB
	router    *gin.Engine
	accessLog *zap.Logger
	Logger    *logrus.Logger
}

func New(conf config.Config) (*App, error) {
	logger := conf.Logger
	if logger == nil {
		logger = logrus.New()
	}

	accessLog, logErr := logs.New()
	if logErr != nil {
		return nil, fmt.Errorf("init access log: %w", logErr)
	}

	ctx := context.Background()
	conn, connErr := db.NewConnectionFactory(ctx, storageConfig(&conf))
	if connErr != nil {
		return nil, fmt.Errorf("init storage: %w", connErr)
	}

	svc := services.Factory(conn, newLocator(&conf, logger), logger, func(o *services.LinkOptions) {
		o.DefaultValidity = conf.DefaultValidity
	})

	router, routerErr := controllers.SetupRouter(controllers.RouterParams{
		URLService:     svc.LinkService,
		PingService:    svc.PingService,
		BaseURL:        conf.BaseURL,
		TrustedProxies: conf.TrustedProxies,
		Logger:         accessLog,
	})
	if routerErr != nil {
		_ = db.Close(conn)
		return nil, fmt.Errorf("init router: %w", routerErr)
	}

	return &App{
		config:    conf,
		conn:      conn,
		router:    router,
		accessLog: accessLog,
		Logger:    logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Handler http обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run запускает web сервер и блокируется до SIGINT/SIGTERM или ошибки сервера.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.serve(ctx)
}

func (a *App) serve(ctx context.Context) error {
	defer a.close()

	server := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.router,
		ReadTimeout:       ReadTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.WithError(serverErr).Error("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.WithError(err).Error("graceful shutdown failed")
	}
	return serverErr
}

func (a *App) close() {
	if err := db.Close(a.conn); err != nil {
		a.Logger.WithError(err).Error("close storage")
	}
	_ = a.accessLog.Sync()
}

func storageConfig(conf *config.Config) db.FactoryConfig {
	if conf.DatabaseDSN != "" {
		return db.FactoryConfig{
			StorageType: db.StorageTypePostgres,
			PostgresDSN: &conf.DatabaseDSN,
		}
	}
	return db.FactoryConfig{
		StorageType:  db.StorageTypeSQLite,
		SqliteDBPath: &conf.SQLitePath,
	}
}

func newLocator(conf *config.Config, logger *logrus.Logger) services.Locator {
	httpLocator := geo.NewHTTPLocator(logger, func(o *geo.Options) {
		if conf.GeoLookupURL != "" {
			o.LookupURL = conf.GeoLookupURL
		}
		if conf.GeoTimeout > 0 {
			o.Timeout = conf.GeoTimeout
		}
	})
	if conf.GeoCacheTTL <= 0 {
		return httpLocator
	}
	return geo.NewCachedLocator(httpLocator, conf.GeoCacheTTL)
}
