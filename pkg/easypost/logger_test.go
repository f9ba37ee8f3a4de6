package easypost_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

func TestZapLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := easypost.NewZapLogger(zap.New(core))

	logger.Debug("HTTP Request", map[string]interface{}{"method": "GET", "path": "/v2/shipments"})
	logger.Info("started", nil)
	logger.Warn("slow response", map[string]interface{}{"duration_ms": 1200})
	logger.Error("request failed", map[string]interface{}{"error": errors.New("connection reset")})

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "HTTP Request", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"method": "GET", "path": "/v2/shipments"}, entries[0].ContextMap())

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Empty(t, entries[1].Context)

	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "connection reset", entries[3].ContextMap()["error"])
}

func TestZapLogger_Nil(t *testing.T) {
	t.Parallel()

	logger := easypost.NewZapLogger(nil)

	assert.NotPanics(t, func() {
		logger.Info("discarded", map[string]interface{}{"key": "value"})
	})
	assert.NotNil(t, logger.Zap())
}

func TestNewZapLoggerForLevel(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"debug", "info", "WARN", "error", "bogus"} {
		logger, err := easypost.NewZapLoggerForLevel(level)
		require.NoError(t, err, level)
		require.NotNil(t, logger)
	}

	logger, err := easypost.NewZapLoggerForLevel("warn")
	require.NoError(t, err)
	assert.False(t, logger.Zap().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Zap().Core().Enabled(zapcore.WarnLevel))
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	var logger easypost.Logger = easypost.NopLogger{}

	assert.NotPanics(t, func() {
		logger.Debug("a", nil)
		logger.Info("b", nil)
		logger.Warn("c", nil)
		logger.Error("d", nil)
	})
}
