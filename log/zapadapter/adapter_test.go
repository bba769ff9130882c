package zapadapter_test

import (
	"context"
	"testing"

	"github.com/rowmap/rowmap/log/zapadapter"
	"github.com/rowmap/rowmap/tracelog"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zapadapter.NewLogger(zap.New(core))

	logger.Log(context.Background(), tracelog.LogLevelInfo, "hello", map[string]any{"b": 2, "a": "one"})
	logger.Log(context.Background(), tracelog.LogLevelTrace, "cache hit", nil)
	logger.Log(context.Background(), tracelog.LogLevelWarn, "careful", nil)
	logger.Log(context.Background(), tracelog.LogLevel(42), "odd", nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, "hello", entries[0].Message)
	require.Equal(t, map[string]any{"a": "one", "b": int64(2)}, entries[0].ContextMap())

	require.Equal(t, zapcore.DebugLevel, entries[1].Level)
	require.Equal(t, "trace", entries[1].ContextMap()["ROWMAP_LOG_LEVEL"])

	require.Equal(t, zapcore.WarnLevel, entries[2].Level)

	require.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	require.Contains(t, entries[3].ContextMap(), "INVALID_ROWMAP_LOG_LEVEL")
}
