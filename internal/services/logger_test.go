package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core), "habitcoach")

	logger.Info("message sent", "user_id", "u1", "turns", 3)
	logger.Warn("gateway slow", "elapsed_ms", 900)

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "message sent", entries[0].Message)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	require.Equal(t, "habitcoach", fields["service"])
	require.Equal(t, "u1", fields["user_id"])
	require.EqualValues(t, 3, fields["turns"])
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestNewLoggerSilentUnderTest(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	require.IsType(t, &NoOpLogger{}, NewLogger("habitcoach"))
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	require.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	require.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	require.Equal(t, zapcore.InfoLevel, parseLevel(""))
}
