// Package tracelog provides the logging interface used to observe decoder registry activity.
package tracelog

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

// LogLevel represents the rowmap logging level. See LogLevel* constants for
// possible values.
type LogLevel int

// The values for log levels are chosen such that the zero value means that no
// log level was specified.
const (
	LogLevelTrace = LogLevel(6)
	LogLevelDebug = LogLevel(5)
	LogLevelInfo  = LogLevel(4)
	LogLevelWarn  = LogLevel(3)
	LogLevelError = LogLevel(2)
	LogLevelNone  = LogLevel(1)
)

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelTrace:
		return "trace"
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelNone:
		return "none"
	default:
		return fmt.Sprintf("invalid level %d", ll)
	}
}

// Logger is the interface used to get log output from rowmap.
type Logger interface {
	// Log a message at the given level with data key/value pairs. data may be nil.
	Log(ctx context.Context, level LogLevel, msg string, data map[string]any)
}

// LoggerFunc is a wrapper around a function to satisfy the Logger interface
type LoggerFunc func(ctx context.Context, level LogLevel, msg string, data map[string]any)

// Log delegates the logging request to the wrapped function
func (f LoggerFunc) Log(ctx context.Context, level LogLevel, msg string, data map[string]any) {
	f(ctx, level, msg, data)
}

// LogLevelFromString converts log level string to constant
//
// Valid levels:
//
//	trace
//	debug
//	info
//	warn
//	error
//	none
func LogLevelFromString(s string) (LogLevel, error) {
	switch s {
	case "trace":
		return LogLevelTrace, nil
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warn":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "none":
		return LogLevelNone, nil
	default:
		return 0, errors.New("invalid log level")
	}
}

// TraceLog filters log output by level before handing it to Logger. The zero value logs nothing.
type TraceLog struct {
	Logger   Logger
	LogLevel LogLevel
}

// Enabled reports whether a message at lvl would be passed to the Logger.
func (tl *TraceLog) Enabled(lvl LogLevel) bool {
	return tl != nil && tl.Logger != nil && tl.LogLevel >= lvl
}

// Log sends msg to the Logger if lvl is enabled.
func (tl *TraceLog) Log(ctx context.Context, lvl LogLevel, msg string, data map[string]any) {
	if !tl.Enabled(lvl) {
		return
	}

	tl.Logger.Log(ctx, lvl, msg, data)
}

// TruncateText shortens s to at most 64 bytes on a rune boundary so literal text does not flood log output.
func TruncateText(s string) string {
	if len(s) <= 64 {
		return s
	}

	l := 0
	for w := 0; l < 64; l += w {
		_, w = utf8.DecodeRuneInString(s[l:])
	}
	if len(s) > l {
		return fmt.Sprintf("%s (truncated %d bytes)", s[:l], len(s)-l)
	}
	return s
}
