package pgtext

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/gofrs/uuid"
	"github.com/rowmap/rowmap/internal/nullable"
	"github.com/shopspring/decimal"
)

// builtinDecoder decodes literal text with parse. Raw values that are already a T are returned unchanged and other
// driver values are offered to convert.
type builtinDecoder[T any] struct {
	kind    Kind
	parse   func(string) (T, error)
	convert func(src any) (T, bool, error)
}

func newBuiltin[T any](kind Kind, parse func(string) (T, error), convert func(src any) (T, bool, error)) *builtinDecoder[T] {
	return &builtinDecoder[T]{kind: kind, parse: parse, convert: convert}
}

func (d *builtinDecoder[T]) DecodeValue(src any) (T, error) {
	return d.decode(src, true)
}

func (d *builtinDecoder[T]) decode(src any, unwrap bool) (T, error) {
	var zero T

	// string comes before T so text is always parsed, and T comes before []byte so a bytea value already decoded by
	// the driver is not parsed a second time.
	switch s := src.(type) {
	case nil:
		return zero, &DecodeMismatchError{Expected: typeFor[T](), Actual: "NULL"}
	case string:
		return parseText(d.kind, s, d.parse)
	case T:
		return s, nil
	case []byte:
		return parseText(d.kind, string(s), d.parse)
	}

	if d.convert != nil {
		v, ok, err := d.convert(src)
		if ok {
			if err != nil {
				return zero, &DecodeMismatchError{Expected: typeFor[T](), Actual: typeName(src), Err: err}
			}
			return v, nil
		}
	}

	if v, ok, err := nullable.Unwrap(src); ok && unwrap {
		if err != nil {
			return zero, &DecodeMismatchError{Expected: typeFor[T](), Actual: typeName(src), Err: err}
		}
		if v == nil {
			return zero, &DecodeMismatchError{Expected: typeFor[T](), Actual: "NULL"}
		}
		return d.decode(v, false)
	}

	return zero, &DecodeMismatchError{Expected: typeFor[T](), Actual: typeName(src)}
}

// builtinDecoderFor returns the built-in decoder for T if T is one of the supported primitive, temporal, text,
// binary, or array types.
func builtinDecoderFor[T any](reg *Registry) (Decoder[T], bool) {
	var dec any

	switch any((*T)(nil)).(type) {
	case *bool:
		dec = newBuiltin(KindBool, parseBool, nil)
	case *int16:
		dec = newBuiltin(KindInt2, parseInt16, intConverter[int16](math.MinInt16, math.MaxInt16))
	case *int32:
		dec = newBuiltin(KindInt4, parseInt32, intConverter[int32](math.MinInt32, math.MaxInt32))
	case *int64:
		dec = newBuiltin(KindInt8, parseInt64, intConverter[int64](math.MinInt64, math.MaxInt64))
	case *int:
		dec = newBuiltin(KindInt8, parseInt, intConverter[int](math.MinInt, math.MaxInt))
	case *float32:
		dec = newBuiltin(KindFloat4, parseFloat32, floatConverter[float32])
	case *float64:
		dec = newBuiltin(KindFloat8, parseFloat64, floatConverter[float64])
	case *decimal.Decimal:
		dec = newBuiltin(KindNumeric, parseDecimal, convertDecimal)
	case *apd.Decimal:
		dec = newBuiltin(KindNumeric, parseAPDDecimal, convertAPDDecimal)
	case *string:
		dec = newBuiltin(KindText, parseString, nil)
	case *[]byte:
		dec = newBuiltin(KindBytea, parseBytea, nil)
	case *time.Time:
		dec = newBuiltin(KindTimestamptz, parseTemporal, nil)
	case *Time:
		dec = newBuiltin(KindTime, parseTime, convertTime)
	case *TimeTZ:
		dec = newBuiltin(KindTimeTZ, parseTimeTZ, nil)
	case *uuid.UUID:
		dec = newBuiltin(KindUUID, parseUUID, convertUUID)

	case *[]*bool:
		dec = ArrayDecoder[bool](reg)
	case *[]*int16:
		dec = ArrayDecoder[int16](reg)
	case *[]*int32:
		dec = ArrayDecoder[int32](reg)
	case *[]*int64:
		dec = ArrayDecoder[int64](reg)
	case *[]*int:
		dec = ArrayDecoder[int](reg)
	case *[]*float32:
		dec = ArrayDecoder[float32](reg)
	case *[]*float64:
		dec = ArrayDecoder[float64](reg)
	case *[]*decimal.Decimal:
		dec = ArrayDecoder[decimal.Decimal](reg)
	case *[]*apd.Decimal:
		dec = ArrayDecoder[apd.Decimal](reg)
	case *[]*string:
		dec = ArrayDecoder[string](reg)
	case *[]*[]byte:
		dec = ArrayDecoder[[]byte](reg)
	case *[]*time.Time:
		dec = ArrayDecoder[time.Time](reg)
	case *[]*Time:
		dec = ArrayDecoder[Time](reg)
	case *[]*TimeTZ:
		dec = ArrayDecoder[TimeTZ](reg)
	case *[]*uuid.UUID:
		dec = ArrayDecoder[uuid.UUID](reg)

	default:
		return nil, false
	}

	return dec.(Decoder[T]), true
}

// kindOf names the PostgreSQL kind E is decoded from for error messages.
func kindOf[E any]() Kind {
	switch any((*E)(nil)).(type) {
	case *bool:
		return KindBool
	case *int16:
		return KindInt2
	case *int32:
		return KindInt4
	case *int64, *int:
		return KindInt8
	case *float32:
		return KindFloat4
	case *float64:
		return KindFloat8
	case *decimal.Decimal, *apd.Decimal:
		return KindNumeric
	case *string:
		return KindText
	case *[]byte:
		return KindBytea
	case *time.Time:
		return KindTimestamptz
	case *Time:
		return KindTime
	case *TimeTZ:
		return KindTimeTZ
	case *uuid.UUID:
		return KindUUID
	}

	if t := typeFor[E](); t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Pointer {
		return KindArray
	}
	return Kind(typeFor[E]().String())
}

func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 0)
	return int(n), err
}

func intConverter[T int16 | int32 | int64 | int](lo, hi int64) func(src any) (T, bool, error) {
	return func(src any) (T, bool, error) {
		var n int64
		switch s := src.(type) {
		case int8:
			n = int64(s)
		case int16:
			n = int64(s)
		case int32:
			n = int64(s)
		case int64:
			n = s
		case int:
			n = int64(s)
		case uint8:
			n = int64(s)
		case uint16:
			n = int64(s)
		case uint32:
			n = int64(s)
		default:
			return 0, false, nil
		}

		if n < lo || n > hi {
			return 0, true, fmt.Errorf("%d is out of range", n)
		}
		return T(n), true, nil
	}
}

func floatConverter[T float32 | float64](src any) (T, bool, error) {
	switch s := src.(type) {
	case float32:
		return T(s), true, nil
	case float64:
		return T(s), true, nil
	case int64:
		return T(s), true, nil
	case int32:
		return T(s), true, nil
	}
	return 0, false, nil
}

func convertDecimal(src any) (decimal.Decimal, bool, error) {
	switch s := src.(type) {
	case int64:
		return decimal.NewFromInt(s), true, nil
	case int32:
		return decimal.NewFromInt32(s), true, nil
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return decimal.Decimal{}, true, fmt.Errorf("%v has no decimal representation", s)
		}
		return decimal.NewFromFloat(s), true, nil
	case apd.Decimal:
		d, err := decimal.NewFromString(s.String())
		return d, true, err
	case *apd.Decimal:
		if s == nil {
			return decimal.Decimal{}, false, nil
		}
		d, err := decimal.NewFromString(s.String())
		return d, true, err
	}
	return decimal.Decimal{}, false, nil
}

func parseAPDDecimal(s string) (apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return apd.Decimal{}, err
	}
	return *d, nil
}

func convertAPDDecimal(src any) (apd.Decimal, bool, error) {
	switch s := src.(type) {
	case int64:
		return *apd.New(s, 0), true, nil
	case int32:
		return *apd.New(int64(s), 0), true, nil
	case decimal.Decimal:
		d, err := parseAPDDecimal(s.String())
		return d, true, err
	case *apd.Decimal:
		if s == nil {
			return apd.Decimal{}, false, nil
		}
		return *s, true, nil
	}
	return apd.Decimal{}, false, nil
}

// parseTemporal accepts a timestamp with offset, a timestamp without one, or a bare date. The latter two are
// interpreted as UTC.
func parseTemporal(s string) (time.Time, error) {
	if t, err := parseTimestamptz(s); err == nil {
		return t, nil
	}
	if t, err := parseTimestamp(s); err == nil {
		return t, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, errors.New("expected timestamptz, timestamp or date")
	}
	return t, nil
}

func convertTime(src any) (Time, bool, error) {
	d, ok := src.(time.Duration)
	if !ok {
		return Time{}, false, nil
	}
	if d < 0 || d > 24*time.Hour {
		return Time{}, true, fmt.Errorf("%v is not a time of day", d)
	}
	return Time{Microseconds: d.Microseconds()}, true, nil
}

func convertUUID(src any) (uuid.UUID, bool, error) {
	b, ok := src.([16]byte)
	if !ok {
		return uuid.UUID{}, false, nil
	}
	return uuid.UUID(b), true, nil
}
