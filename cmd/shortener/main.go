package main

import (
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/shortlinks/internal/app"
	"github.com/fsdevblog/shortlinks/internal/bmeta"
	"github.com/fsdevblog/shortlinks/internal/config"
)

// Заполняются при сборке через -ldflags "-X main.buildVersion=...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	bmeta.Print(bmeta.Meta{Version: buildVersion, Date: buildDate, Commit: buildCommit})

	appConf := config.MustLoadConfig()
	a := app.Must(app.New(*appConf))

	a.Logger.WithFields(logrus.Fields{
		"address":  appConf.ServerAddress,
		"postgres": appConf.DatabaseDSN != "",
		"sqlite":   appConf.SQLitePath,
	}).Info("Starting server")
	if err := a.Run(); err != nil {
		a.Logger.WithError(err).Fatal("server stopped")
	}
}
