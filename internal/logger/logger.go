package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/tiara-archive-bot/internal/config"
)

// New builds the application logger: JSON output in production, console
// output with debug level everywhere else. cfg.LogLevel overrides the level.
func New(cfg *config.Config) (*zap.Logger, error) {
	zc, err := zapConfig(cfg)
	if err != nil {
		return nil, err
	}
	return zc.Build()
}

// NewFile is New with every entry written to path instead of stderr.
// The terminal client uses it because it owns the screen.
func NewFile(cfg *config.Config, path string) (*zap.Logger, error) {
	zc, err := zapConfig(cfg)
	if err != nil {
		return nil, err
	}
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

func zapConfig(cfg *config.Config) (zap.Config, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return zap.Config{}, fmt.Errorf("parse log level: %w", err)
		}
		zc.Level = level
	}
	return zc, nil
}
