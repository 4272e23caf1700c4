// Package logging builds the process logger.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/blackwell-systems/ghintake/internal/config"
)

// New builds a zap logger from cfg. Production mode logs JSON to stderr,
// development mode logs console lines. When a filename is set, JSON lines
// are also written to a rotating file.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Mode == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}

	if cfg.Filename == "" {
		return zapConfig.Build()
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	var stderrEncoder zapcore.Encoder
	if cfg.Mode == "development" {
		stderrEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		stderrEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotating),
			zapConfig.Level,
		),
		zapcore.NewCore(stderrEncoder, zapcore.Lock(os.Stderr), zapConfig.Level),
	)
	return zap.New(core, zap.AddCaller()), nil
}
