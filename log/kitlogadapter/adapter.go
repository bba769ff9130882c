// Package kitlogadapter provides a logger that writes to a github.com/go-kit/log.Logger.
package kitlogadapter

import (
	"context"
	"sort"

	"github.com/go-kit/log"
	kitlevel "github.com/go-kit/log/level"
	"github.com/rowmap/rowmap/tracelog"
)

// Logger writes registry events to a go-kit logger. Event data is logged as key/value pairs sorted by key.
type Logger struct {
	l log.Logger
}

// NewLogger returns a Logger writing to l. Levels are attached with github.com/go-kit/log/level. go-kit has no trace
// level so trace events are logged without one and carry a ROWMAP_LOG_LEVEL=trace pair instead.
func NewLogger(l log.Logger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	logger := l.l
	if len(data) > 0 {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		keyvals := make([]any, 0, 2*len(keys))
		for _, k := range keys {
			keyvals = append(keyvals, k, data[k])
		}
		logger = log.With(logger, keyvals...)
	}

	switch level {
	case tracelog.LogLevelTrace:
		logger.Log("ROWMAP_LOG_LEVEL", level, "msg", msg)
	case tracelog.LogLevelDebug:
		kitlevel.Debug(logger).Log("msg", msg)
	case tracelog.LogLevelInfo:
		kitlevel.Info(logger).Log("msg", msg)
	case tracelog.LogLevelWarn:
		kitlevel.Warn(logger).Log("msg", msg)
	case tracelog.LogLevelError:
		kitlevel.Error(logger).Log("msg", msg)
	default:
		logger.Log("INVALID_ROWMAP_LOG_LEVEL", level, "error", msg)
	}
}
