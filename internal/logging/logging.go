// Package logging hands out scoped pion loggers. Log levels of the default
// factory are controlled with the PION_LOG_* environment variables.
package logging

import (
	"github.com/pion/logging"
)

var loggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger returns a logger for scope from factory, or from the package
// default when factory is nil.
func NewLogger(scope string, factory logging.LoggerFactory) logging.LeveledLogger {
	if factory == nil {
		factory = loggerFactory
	}
	return factory.NewLogger(scope)
}
