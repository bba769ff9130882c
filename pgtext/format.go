package pgtext

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Kind names the PostgreSQL type a field is read or written as.
type Kind string

const (
	KindBool        Kind = "bool"
	KindInt2        Kind = "int2"
	KindInt4        Kind = "int4"
	KindInt8        Kind = "int8"
	KindFloat4      Kind = "float4"
	KindFloat8      Kind = "float8"
	KindNumeric     Kind = "numeric"
	KindText        Kind = "text"
	KindBytea       Kind = "bytea"
	KindDate        Kind = "date"
	KindTime        Kind = "time"
	KindTimeTZ      Kind = "timetz"
	KindTimestamp   Kind = "timestamp"
	KindTimestamptz Kind = "timestamptz"
	KindUUID        Kind = "uuid"
	KindRecord      Kind = "record"
	KindArray       Kind = "array"
)

const (
	dateFormat        = "2006-01-02"
	timestampFormat   = "2006-01-02 15:04:05.000000"
	timestamptzFormat = "2006-01-02 15:04:05.000000-07:00"

	// Offsets with a seconds part, such as local mean time zones before 1900, need the long form.
	timestamptzSecondsFormat = "2006-01-02 15:04:05.000000-07:00:00"

	microsecondsPerSecond = 1000000
	microsecondsPerMinute = 60 * microsecondsPerSecond
	microsecondsPerHour   = 60 * microsecondsPerMinute
	microsecondsPerDay    = 24 * microsecondsPerHour
)

var timestamptzParseFormats = []string{
	"2006-01-02 15:04:05-07:00:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05Z07:00",
}

// Time is a time of day without a date, as stored by the PostgreSQL time type.
type Time struct {
	Microseconds int64 // Number of microseconds since midnight
}

// NewTime returns the Time for the given clock reading.
func NewTime(hour, minute, second, usec int) Time {
	return Time{Microseconds: int64(hour)*microsecondsPerHour + int64(minute)*microsecondsPerMinute + int64(second)*microsecondsPerSecond + int64(usec)}
}

func (t Time) String() string {
	return formatTime(t)
}

// TimeTZ is a time of day with a fixed UTC offset, as stored by the PostgreSQL timetz type.
type TimeTZ struct {
	Microseconds int64 // Number of microseconds since midnight
	Offset       int32 // Seconds east of UTC
}

func (t TimeTZ) String() string {
	return formatTimeTZ(t)
}

func parseText[T any](kind Kind, s string, parse func(string) (T, error)) (T, error) {
	v, err := parse(s)
	if err != nil {
		return v, &FieldParseError{Kind: kind, Text: s, Err: err}
	}
	return v, nil
}

func formatBool(b bool) string {
	if b {
		return "t"
	}
	return "f"
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "t", "true", "y", "yes", "on", "1":
		return true, nil
	case "f", "false", "n", "no", "off", "0":
		return false, nil
	}
	return false, errors.New("invalid boolean")
}

func parseInt16(s string) (int16, error) {
	n, err := strconv.ParseInt(s, 10, 16)
	return int16(n), err
}

func parseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	return int32(n), err
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

func parseFloat(s string, bitSize int) (float64, error) {
	switch strings.ToLower(s) {
	case "nan":
		return math.NaN(), nil
	case "infinity", "+infinity", "inf", "+inf":
		return math.Inf(1), nil
	case "-infinity", "-inf":
		return math.Inf(-1), nil
	}
	return strconv.ParseFloat(s, bitSize)
}

func parseFloat32(s string) (float32, error) {
	f, err := parseFloat(s, 32)
	return float32(f), err
}

func parseFloat64(s string) (float64, error) {
	return parseFloat(s, 64)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func parseString(s string) (string, error) {
	return s, nil
}

func formatBytea(b []byte) string {
	return `\x` + hex.EncodeToString(b)
}

func parseBytea(s string) ([]byte, error) {
	if !strings.HasPrefix(s, `\x`) {
		return nil, errors.New(`bytea text must use hex format beginning with \x`)
	}
	return hex.DecodeString(s[2:])
}

func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateFormat, s, time.UTC)
}

func formatTime(t Time) string {
	usec := t.Microseconds
	hours := usec / microsecondsPerHour
	usec -= hours * microsecondsPerHour
	minutes := usec / microsecondsPerMinute
	usec -= minutes * microsecondsPerMinute
	seconds := usec / microsecondsPerSecond
	usec -= seconds * microsecondsPerSecond

	return fmt.Sprintf("%02d:%02d:%02d.%06d", hours, minutes, seconds, usec)
}

func parseTime(s string) (Time, error) {
	usec, rest, err := parseClock(s)
	if err != nil {
		return Time{}, err
	}
	if rest != "" {
		return Time{}, fmt.Errorf("unexpected trailing text %q", rest)
	}
	return Time{Microseconds: usec}, nil
}

func formatTimeTZ(t TimeTZ) string {
	return formatTime(Time{Microseconds: t.Microseconds}) + formatOffset(t.Offset)
}

func parseTimeTZ(s string) (TimeTZ, error) {
	usec, rest, err := parseClock(s)
	if err != nil {
		return TimeTZ{}, err
	}
	offset, err := parseOffset(rest)
	if err != nil {
		return TimeTZ{}, err
	}
	return TimeTZ{Microseconds: usec, Offset: offset}, nil
}

// parseClock reads HH:MM:SS with an optional fraction of up to six digits and returns the unparsed remainder.
func parseClock(s string) (int64, string, error) {
	if len(s) < 8 || s[2] != ':' || s[5] != ':' {
		return 0, "", errors.New("expected HH:MM:SS")
	}

	hours, err := strconv.ParseInt(s[0:2], 10, 64)
	if err != nil {
		return 0, "", err
	}
	minutes, err := strconv.ParseInt(s[3:5], 10, 64)
	if err != nil {
		return 0, "", err
	}
	seconds, err := strconv.ParseInt(s[6:8], 10, 64)
	if err != nil {
		return 0, "", err
	}
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 {
		return 0, "", errors.New("minute or second out of range")
	}

	usec := hours*microsecondsPerHour + minutes*microsecondsPerMinute + seconds*microsecondsPerSecond
	rest := s[8:]

	if strings.HasPrefix(rest, ".") {
		i := 1
		for i < len(rest) && '0' <= rest[i] && rest[i] <= '9' {
			i++
		}
		digits := rest[1:i]
		if len(digits) == 0 || len(digits) > 6 {
			return 0, "", errors.New("fractional seconds must have 1 to 6 digits")
		}
		frac, err := strconv.ParseInt(digits+strings.Repeat("0", 6-len(digits)), 10, 64)
		if err != nil {
			return 0, "", err
		}
		usec += frac
		rest = rest[i:]
	}

	if usec > microsecondsPerDay {
		return 0, "", errors.New("time of day out of range")
	}

	return usec, rest, nil
}

func formatOffset(offset int32) string {
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}

	hours := offset / 3600
	minutes := (offset % 3600) / 60
	seconds := offset % 60

	if seconds != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, hours, minutes, seconds)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, hours, minutes)
}

func parseOffset(s string) (int32, error) {
	if len(s) < 3 || (s[0] != '+' && s[0] != '-') {
		return 0, fmt.Errorf("invalid UTC offset %q", s)
	}

	var parts [3]int64
	fields := strings.Split(s[1:], ":")
	if len(fields) > 3 {
		return 0, fmt.Errorf("invalid UTC offset %q", s)
	}
	for i, f := range fields {
		if len(f) != 2 {
			return 0, fmt.Errorf("invalid UTC offset %q", s)
		}
		n, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return 0, err
		}
		parts[i] = n
	}

	offset := int32(parts[0]*3600 + parts[1]*60 + parts[2])
	if s[0] == '-' {
		offset = -offset
	}
	return offset, nil
}

func discardTimeZone(t time.Time) time.Time {
	if t.Location() != time.UTC {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}

	return t
}

func formatTimestamp(t time.Time) string {
	return discardTimeZone(t).Format(timestampFormat)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
}

func formatTimestamptz(t time.Time) string {
	if _, offset := t.Zone(); offset%60 != 0 {
		return t.Format(timestamptzSecondsFormat)
	}
	return t.Format(timestamptzFormat)
}

func parseTimestamptz(s string) (time.Time, error) {
	var err error
	for _, layout := range timestamptzParseFormats {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			_, offset := t.Zone()
			return t.In(time.FixedZone("", offset)), nil
		}
	}
	return time.Time{}, err
}

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.FromString(s)
}
