package kitlogadapter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/rowmap/rowmap/log/kitlogadapter"
	"github.com/rowmap/rowmap/tracelog"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := kitlogadapter.NewLogger(log.NewLogfmtLogger(&buf))

	logger.Log(context.Background(), tracelog.LogLevelInfo, "decoder registered", map[string]any{"type": "point"})
	require.Equal(t, "level=info type=point msg=\"decoder registered\"\n", buf.String())

	buf.Reset()
	logger.Log(context.Background(), tracelog.LogLevelDebug, "decoder resolved", map[string]any{"type": "int16", "source": "builtin"})
	require.Equal(t, "level=debug source=builtin type=int16 msg=\"decoder resolved\"\n", buf.String())

	buf.Reset()
	logger.Log(context.Background(), tracelog.LogLevelTrace, "hit", nil)
	require.Equal(t, "ROWMAP_LOG_LEVEL=trace msg=hit\n", buf.String())

	buf.Reset()
	logger.Log(context.Background(), tracelog.LogLevel(0), "odd", nil)
	require.Contains(t, buf.String(), "INVALID_ROWMAP_LOG_LEVEL")
}
