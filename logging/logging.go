// Package logging provides the structured logger used by every long-lived
// consensus component. It wraps go.uber.org/zap directly, the way
// protocol/nova's Context{Log ...} does, without the extra logger-interface
// indirection the teacher layers on top for multi-backend support.
package logging

import "go.uber.org/zap"

// NoOp returns a logger that discards everything, for tests and for
// components that were not given an explicit logger.
func NoOp() *zap.Logger {
	return zap.NewNop()
}

// Development returns a human-readable logger suitable for local runs.
func Development() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return NoOp()
	}
	return logger
}

// Production returns a JSON logger suitable for operational deployments.
func Production() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return NoOp()
	}
	return logger
}
