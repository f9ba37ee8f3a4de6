package easypost

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap logger to Logger.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps logger. A nil logger discards everything.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ZapLogger{logger: logger}
}

// NewZapLoggerForLevel builds a JSON zap logger writing to stderr at level
// ("debug", "info", "warn" or "error").
func NewZapLoggerForLevel(level string) (*ZapLogger, error) {
	var zapLevel zapcore.Level

	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.Encoding = "json"
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("building zap logger: %w", err)
	}

	return NewZapLogger(logger), nil
}

// Zap returns the underlying zap logger.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.logger
}

// Debug implements Logger.Debug.
func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, zapFields(fields)...)
}

// Info implements Logger.Info.
func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, zapFields(fields)...)
}

// Warn implements Logger.Warn.
func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, zapFields(fields)...)
}

// Error implements Logger.Error.
func (l *ZapLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, zapFields(fields)...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	err := l.logger.Sync()
	if err != nil {
		return fmt.Errorf("syncing logger: %w", err)
	}

	return nil
}

func zapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		if err, ok := fields[key].(error); ok {
			out = append(out, zap.NamedError(key, err))

			continue
		}

		out = append(out, zap.Any(key, fields[key]))
	}

	return out
}

// NopLogger discards all messages.
type NopLogger struct{}

// Debug implements Logger.Debug.
func (NopLogger) Debug(string, map[string]interface{}) {}

// Info implements Logger.Info.
func (NopLogger) Info(string, map[string]interface{}) {}

// Warn implements Logger.Warn.
func (NopLogger) Warn(string, map[string]interface{}) {}

// Error implements Logger.Error.
func (NopLogger) Error(string, map[string]interface{}) {}
