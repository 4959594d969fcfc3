// Package logger holds the process-wide zap logger. Log lines go to stderr
// (and optionally a file) so stdout stays clean for command output.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/codeorbit/codeorbit-client/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger = zap.NewNop()

// encoderFor picks the zap encoding and encoder settings for cfg.Format.
func encoderFor(cfg *config.LoggingConfig) (string, zapcore.EncoderConfig, error) {
	switch cfg.Format {
	case "json":
		enc := zap.NewProductionEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		return "json", enc, nil
	case "console", "":
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		if cfg.Color {
			enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		enc.EncodeCaller = zapcore.ShortCallerEncoder
		enc.EncodeDuration = zapcore.StringDurationEncoder
		return "console", enc, nil
	default:
		return "", zapcore.EncoderConfig{}, fmt.Errorf("unsupported log format %q, expected console or json", cfg.Format)
	}
}

// sinks returns the zap output paths. A log file is truncated unless
// AppendToFile is set; stderr is used when nothing else is configured.
func sinks(cfg *config.LoggingConfig) ([]string, error) {
	var paths []string
	if !cfg.DisableConsole {
		paths = append(paths, "stderr")
	}
	if cfg.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		if !cfg.AppendToFile {
			_ = os.Remove(cfg.OutputPath)
		}
		paths = append(paths, cfg.OutputPath)
	}
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}
	return paths, nil
}

// NewLogger builds a logger from the logging section of the configuration.
func NewLogger(cfg *config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	encoding, encoderConfig, err := encoderFor(cfg)
	if err != nil {
		return nil, err
	}
	paths, err := sinks(cfg)
	if err != nil {
		return nil, err
	}

	opts := []zap.Option{zap.AddCallerSkip(1)}
	if !cfg.DisableStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	logger, err := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      encoding == "console",
		Encoding:         encoding,
		OutputPaths:      paths,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig,
	}.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// InitLogger replaces the global logger with one built from cfg.
func InitLogger(cfg *config.LoggingConfig) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	SetLogger(logger)
	return nil
}

// SetLogger replaces the global logger. nil installs a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	globalLogger = l
}

// GetLogger returns the current global logger.
func GetLogger() *zap.Logger {
	return globalLogger
}

func Debug(msg string, fields ...zap.Field) {
	globalLogger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	globalLogger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	globalLogger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	globalLogger.Error(msg, fields...)
}

// Sync flushes buffered entries. Called once before the CLI exits.
func Sync() error {
	return globalLogger.Sync()
}
