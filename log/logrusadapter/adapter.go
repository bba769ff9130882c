// Package logrusadapter provides a logger that writes to a github.com/sirupsen/logrus.Logger
// log.
package logrusadapter

import (
	"context"

	"github.com/rowmap/rowmap/tracelog"
	"github.com/sirupsen/logrus"
)

// Logger writes registry events to a logrus FieldLogger with the event data as fields.
type Logger struct {
	l logrus.FieldLogger
}

// NewLogger returns a Logger writing to l. Both *logrus.Logger and *logrus.Entry can be used, so fields already set
// on an entry are kept. Trace events are written at debug level with a ROWMAP_LOG_LEVEL=trace field.
func NewLogger(l logrus.FieldLogger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	logger := l.l
	if len(data) > 0 {
		logger = logger.WithFields(logrus.Fields(data))
	}

	switch level {
	case tracelog.LogLevelTrace:
		logger.WithField("ROWMAP_LOG_LEVEL", level).Debug(msg)
	case tracelog.LogLevelDebug:
		logger.Debug(msg)
	case tracelog.LogLevelInfo:
		logger.Info(msg)
	case tracelog.LogLevelWarn:
		logger.Warn(msg)
	case tracelog.LogLevelError:
		logger.Error(msg)
	default:
		logger.WithField("INVALID_ROWMAP_LOG_LEVEL", level).Error(msg)
	}
}
