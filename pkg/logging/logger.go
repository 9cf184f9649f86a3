// Package logging provides the shared zap logger and log sanitization.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process-wide zap logger for the given environment.
// "local" and "development" get human-readable console output at debug
// level; everything else gets production JSON.
func New(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	switch env {
	case "local", "development":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger, nil
}
