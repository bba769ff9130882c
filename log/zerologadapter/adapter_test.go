package zerologadapter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rowmap/rowmap/log/zerologadapter"
	"github.com/rowmap/rowmap/pgtext"
	"github.com/rowmap/rowmap/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		var buf bytes.Buffer
		zlogger := zerolog.New(&buf)
		logger := zerologadapter.NewLogger(zlogger)
		logger.Log(context.Background(), tracelog.LogLevelInfo, "hello", map[string]any{"one": "two"})
		const want = `{"level":"info","module":"rowmap","one":"two","message":"hello"}
`
		require.Equal(t, want, buf.String())
	})

	t.Run("disable module", func(t *testing.T) {
		var buf bytes.Buffer
		zlogger := zerolog.New(&buf)
		logger := zerologadapter.NewLogger(zlogger, zerologadapter.WithoutModule())
		logger.Log(context.Background(), tracelog.LogLevelInfo, "hello", nil)
		const want = `{"level":"info","message":"hello"}
`
		require.Equal(t, want, buf.String())
	})

	t.Run("from context", func(t *testing.T) {
		var buf bytes.Buffer
		zlogger := zerolog.New(&buf)
		ctx := zlogger.WithContext(context.Background())
		logger := zerologadapter.NewContextLogger()
		logger.Log(ctx, tracelog.LogLevelInfo, "hello", map[string]any{"one": "two"})
		const want = `{"level":"info","module":"rowmap","one":"two","message":"hello"}
`
		require.Equal(t, want, buf.String())
	})

	var buf bytes.Buffer
	type key string
	var ck key
	zlogger := zerolog.New(&buf)
	logger := zerologadapter.NewLogger(zlogger,
		zerologadapter.WithContextFunc(func(ctx context.Context, logWith zerolog.Context) zerolog.Context {
			id, ok := ctx.Value(ck).(string)
			if ok {
				logWith = logWith.Str("req_id", id)
			}
			return logWith
		}),
	)

	t.Run("no request id", func(t *testing.T) {
		buf.Reset()
		logger.Log(context.Background(), tracelog.LogLevelInfo, "hello", nil)
		const want = `{"level":"info","module":"rowmap","message":"hello"}
`
		require.Equal(t, want, buf.String())
	})

	t.Run("with request id", func(t *testing.T) {
		buf.Reset()
		ctx := context.WithValue(context.Background(), ck, "1")
		logger.Log(ctx, tracelog.LogLevelInfo, "hello", map[string]any{"two": "2"})
		const want = `{"level":"info","module":"rowmap","req_id":"1","two":"2","message":"hello"}
`
		require.Equal(t, want, buf.String())
	})
}

func TestLoggerWithRegistry(t *testing.T) {
	var buf bytes.Buffer
	logger := zerologadapter.NewLogger(zerolog.New(&buf), zerologadapter.WithoutModule())
	reg := pgtext.NewRegistry(pgtext.WithLogger(logger, tracelog.LogLevelDebug))

	_, err := pgtext.Resolve[int32](reg)
	require.NoError(t, err)

	const want = `{"level":"debug","source":"builtin","type":"int32","message":"decoder resolved"}
`
	require.Equal(t, want, buf.String())
}
