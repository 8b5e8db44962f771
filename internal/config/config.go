package config

import (
	"flag"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultSQLitePath    = "./shortener.db"
)

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Базовый адрес результирующего сокращенного URL
	BaseURL *url.URL `env:"BASE_URL"`
	// Путь к файлу sqlite
	SQLitePath string `env:"SQLITE_PATH"`
	// Строка подключения к PostgreSQL. Если задана - используется вместо sqlite
	DatabaseDSN string `env:"DATABASE_DSN"`
	// Срок жизни ссылки по умолчанию
	DefaultValidity time.Duration `env:"DEFAULT_VALIDITY" envDefault:"30m"`
	// Шаблон адреса сервиса геолокации, %s заменяется на IP
	GeoLookupURL string `env:"GEO_LOOKUP_URL" envDefault:"https://ipapi.co/%s/json/"`
	// Таймаут запроса геолокации
	GeoTimeout time.Duration `env:"GEO_TIMEOUT" envDefault:"2s"`
	// Сколько хранить найденное местоположение. 0 - не кешировать
	GeoCacheTTL time.Duration `env:"GEO_CACHE_TTL" envDefault:"24h"`
	// Доверенные прокси, от которых принимаем X-Forwarded-For
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	Logger *logrus.Logger `env:"-"`
}

// MustLoadConfig вызывает панику если конфигурацию загрузить не удалось.
func MustLoadConfig() *Config {
	conf, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return conf
}

// LoadConfig собирает конфигурацию: переменные окружения (в том числе из .env) имеют
// приоритет над флагами командной строки.
func LoadConfig(args []string) (*Config, error) {
	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env file")
	}

	var envConfig Config
	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	flagsConfig, err := loadFlags(args)
	if err != nil {
		return nil, err
	}

	conf := mergeConfig(&envConfig, flagsConfig)
	conf.Logger = initLogger()
	return conf, nil
}

// loadFlags парсит флаги командной строки.
func loadFlags(args []string) (*Config, error) {
	var flagsConfig Config
	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)

	fs.StringVar(&flagsConfig.ServerAddress, "a", defaultServerAddress, "Адрес сервера")
	fs.StringVar(&flagsConfig.SQLitePath, "f", defaultSQLitePath, "Путь к файлу sqlite")
	fs.StringVar(&flagsConfig.DatabaseDSN, "d", "", "Строка подключения к PostgreSQL")

	bDesc := "Базовый адрес результирующего сокращенного URL (по умолчанию Scheme://Host запущенного сервера)"
	fs.Func("b", bDesc, func(rawURL string) error {
		parsedURL, err := parseBaseURL(rawURL)
		if err != nil {
			return err
		}
		flagsConfig.BaseURL = parsedURL
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags")
	}
	return &flagsConfig, nil
}

// parseBaseURL отсекает Path и Query если они заданы в базовом урле.
func parseBaseURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse base url")
	}
	if parsedURL.Host == "" {
		return nil, errors.Errorf("base url %q has no host", rawURL)
	}
	return &url.URL{
		Scheme: parsedURL.Scheme,
		Host:   parsedURL.Host,
	}, nil
}

// mergeConfig сливает структуры для env и флагов.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		ServerAddress:   defaultIfBlank[string](envConfig.ServerAddress, flagsConfig.ServerAddress),
		BaseURL:         defaultIfBlank[*url.URL](envConfig.BaseURL, flagsConfig.BaseURL),
		SQLitePath:      defaultIfBlank[string](envConfig.SQLitePath, flagsConfig.SQLitePath),
		DatabaseDSN:     defaultIfBlank[string](envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		DefaultValidity: envConfig.DefaultValidity,
		GeoLookupURL:    envConfig.GeoLookupURL,
		GeoTimeout:      envConfig.GeoTimeout,
		GeoCacheTTL:     envConfig.GeoCacheTTL,
		TrustedProxies:  envConfig.TrustedProxies,
	}
}

func defaultIfBlank[T any](value T, defaultValue T) T {
	if v, ok := any(value).(string); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(*url.URL); ok && v == nil {
		return defaultValue
	}
	return value
}
