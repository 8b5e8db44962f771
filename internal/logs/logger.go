// Package logs строит zap логгер для журнала HTTP запросов.
package logs

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EncodingType формат вывода логов.
type EncodingType string

const (
	EncodingTypeConsole EncodingType = "console"
	EncodingTypeJSON    EncodingType = "json"
)

// LevelType уровень логирования.
type LevelType string

const (
	LevelTypeDebug LevelType = "debug"
	LevelTypeInfo  LevelType = "info"
	LevelTypeWarn  LevelType = "warn"
	LevelTypeError LevelType = "error"
)

// LoggerOptions настройки логгера.
type LoggerOptions struct {
	Level         LevelType
	Encoding      EncodingType
	OutputPaths   []string
	InitialFields map[string]any
}

// New создает логгер. В release режиме gin (GIN_MODE=release) пишет JSON с уровня info,
// иначе консольный вывод с уровня debug.
func New(opts ...func(*LoggerOptions)) (*zap.Logger, error) {
	isProduction := os.Getenv("GIN_MODE") == "release"

	options := LoggerOptions{
		Level:       LevelTypeDebug,
		Encoding:    EncodingTypeConsole,
		OutputPaths: []string{"stdout"},
	}
	if isProduction {
		options.Level = LevelTypeInfo
		options.Encoding = EncodingTypeJSON
	}
	for _, opt := range opts {
		opt(&options)
	}

	lvl, errLvl := zap.ParseAtomicLevel(string(options.Level))
	if errLvl != nil {
		return nil, fmt.Errorf("parse level: %w", errLvl)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	if !isProduction {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	conf := zap.Config{
		Level:             lvl,
		Development:       !isProduction,
		DisableStacktrace: true,
		Encoding:          string(options.Encoding),
		EncoderConfig:     encoderConfig,
		OutputPaths:       options.OutputPaths,
		ErrorOutputPaths:  []string{"stderr"},
		InitialFields:     options.InitialFields,
	}

	log, err := conf.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// MustNew аналогичен New, но паникует при ошибке.
func MustNew(opts ...func(*LoggerOptions)) *zap.Logger {
	log, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return log
}
