package tracelog_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rowmap/rowmap/tracelog"
	"github.com/stretchr/testify/require"
)

type testLog struct {
	lvl  tracelog.LogLevel
	msg  string
	data map[string]any
}

type testLogger struct {
	logs []testLog

	mux sync.Mutex
}

func (l *testLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	l.mux.Lock()
	defer l.mux.Unlock()

	l.logs = append(l.logs, testLog{lvl: level, msg: msg, data: data})
}

func TestLogLevelFromString(t *testing.T) {
	for _, s := range []string{"trace", "debug", "info", "warn", "error", "none"} {
		lvl, err := tracelog.LogLevelFromString(s)
		require.NoError(t, err)
		require.Equal(t, s, lvl.String())
	}

	_, err := tracelog.LogLevelFromString("loud")
	require.Error(t, err)
	require.Equal(t, "invalid level 42", tracelog.LogLevel(42).String())
}

func TestTraceLogFiltersByLevel(t *testing.T) {
	logger := &testLogger{}
	tl := &tracelog.TraceLog{Logger: logger, LogLevel: tracelog.LogLevelInfo}

	tl.Log(context.Background(), tracelog.LogLevelDebug, "hidden", nil)
	tl.Log(context.Background(), tracelog.LogLevelInfo, "shown", map[string]any{"k": "v"})
	tl.Log(context.Background(), tracelog.LogLevelError, "also shown", nil)

	require.Len(t, logger.logs, 2)
	require.Equal(t, "shown", logger.logs[0].msg)
	require.Equal(t, "v", logger.logs[0].data["k"])
	require.Equal(t, tracelog.LogLevelError, logger.logs[1].lvl)
}

func TestTraceLogZeroValueIsSilent(t *testing.T) {
	var tl *tracelog.TraceLog
	require.False(t, tl.Enabled(tracelog.LogLevelError))
	tl.Log(context.Background(), tracelog.LogLevelError, "nothing", nil)

	tl = &tracelog.TraceLog{LogLevel: tracelog.LogLevelTrace}
	require.False(t, tl.Enabled(tracelog.LogLevelError))
}

func TestLoggerFunc(t *testing.T) {
	var got string
	f := tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		got = level.String() + ":" + msg
	})
	f.Log(context.Background(), tracelog.LogLevelWarn, "careful", nil)
	require.Equal(t, "warn:careful", got)
}

func TestTruncateText(t *testing.T) {
	require.Equal(t, "(1,2)", tracelog.TruncateText("(1,2)"))

	long := strings.Repeat("é", 40)
	got := tracelog.TruncateText(long)
	require.True(t, strings.HasPrefix(got, strings.Repeat("é", 32)))
	require.Contains(t, got, "(truncated 16 bytes)")
}
