package logger

import (
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// leveledLogger forwards retryablehttp log lines to the global zap logger.
type leveledLogger struct{}

var _ retryablehttp.LeveledLogger = leveledLogger{}

// RetryLogger returns a retryablehttp.LeveledLogger backed by the global logger.
// The logger is looked up on every call so InitLogger may run afterwards.
func RetryLogger() retryablehttp.LeveledLogger {
	return leveledLogger{}
}

func (leveledLogger) sugar() *zap.SugaredLogger {
	return GetLogger().WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar().Errorw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar().Infow(msg, keysAndValues...)
}

// Debug lines from retryablehttp are per-attempt request traces.
func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar().Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar().Warnw(msg, keysAndValues...)
}
