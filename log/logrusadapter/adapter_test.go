package logrusadapter_test

import (
	"context"
	"testing"

	"github.com/rowmap/rowmap/log/logrusadapter"
	"github.com/rowmap/rowmap/tracelog"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	logger := logrusadapter.NewLogger(l)

	logger.Log(context.Background(), tracelog.LogLevelInfo, "decoder registered", map[string]any{"type": "point"})
	require.Len(t, hook.Entries, 1)
	require.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	require.Equal(t, "decoder registered", hook.LastEntry().Message)
	require.Equal(t, "point", hook.LastEntry().Data["type"])

	logger.Log(context.Background(), tracelog.LogLevelTrace, "decoder cache hit", nil)
	require.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	require.Equal(t, tracelog.LogLevelTrace, hook.LastEntry().Data["ROWMAP_LOG_LEVEL"])

	logger.Log(context.Background(), tracelog.LogLevelError, "failed", nil)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	require.Len(t, hook.Entries, 3)
}

func TestLoggerKeepsEntryFields(t *testing.T) {
	l, hook := test.NewNullLogger()
	logger := logrusadapter.NewLogger(l.WithField("component", "rowmap"))

	logger.Log(context.Background(), tracelog.LogLevelWarn, "decoder replaced", map[string]any{"type": "point"})
	require.Len(t, hook.Entries, 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	require.Equal(t, logrus.Fields{"component": "rowmap", "type": "point"}, hook.LastEntry().Data)
}
