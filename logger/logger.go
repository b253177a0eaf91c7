// Package logger builds zap loggers with Google Stackdriver
// compatible structured output.
package logger

import (
	"fmt"

	"github.com/blendle/zapdriver"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures a logger. It can be loaded from LOG_ prefixed
// environment variables.
type Config struct {
	// Service is added to every entry.
	Service string `env:"SERVICE"`

	// Level is one of debug, info, warn, error.
	Level string `env:"LEVEL" envDefault:"info"`

	// Development enables human readable output.
	Development bool `env:"DEVELOPMENT"`
}

// New returns a logger writing Stackdriver formatted entries to stderr.
func New(cfg Config) (*zap.Logger, error) {
	zapCfg := zapdriver.NewProductionConfig()
	if cfg.Development {
		zapCfg = zapdriver.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse level: %w", err)
		}

		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.Service != "" {
		zapCfg.InitialFields = map[string]interface{}{
			"service": cfg.Service,
		}
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("config build: %w", err)
	}

	return log, nil
}
