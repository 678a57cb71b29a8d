// Package logging builds the zap logger used across MindMate.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/config"
)

// New returns a JSON production logger, or a console development logger
// when cfg.Development is set. Both write to stderr so command output on
// stdout stays machine-readable.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("mindmate"), nil
}
