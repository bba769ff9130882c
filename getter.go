package rowmap

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rowmap/rowmap/internal/nullable"
	"github.com/rowmap/rowmap/pgtext"
	"github.com/shopspring/decimal"
)

// Get decodes the named column of row as a T with reg. If reg is nil the default registry is used. A NULL column is
// an error; use GetNullable for nullable columns.
func Get[T any](row Row, reg *pgtext.Registry, name string) (T, error) {
	var zero T

	raw, ok := row.RawValue(name)
	if !ok {
		return zero, &ColumnNotFoundError{Name: name}
	}

	v, err := pgtext.Decode[T](registryOrDefault(reg), raw)
	if err != nil {
		return zero, fmt.Errorf("column %q: %w", name, err)
	}
	return v, nil
}

// GetNullable decodes the named column of row as a T with reg. It returns nil for NULL.
func GetNullable[T any](row Row, reg *pgtext.Registry, name string) (*T, error) {
	raw, ok := row.RawValue(name)
	if !ok {
		return nil, &ColumnNotFoundError{Name: name}
	}

	v, err := pgtext.DecodeNullable[T](registryOrDefault(reg), raw)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", name, err)
	}
	return v, nil
}

// GetArray decodes the named array column of row into elements of E. Element types without a built-in array
// mapping are decoded with the decoder reg resolves for E. It returns nil for NULL.
func GetArray[E any](row Row, reg *pgtext.Registry, name string) ([]*E, error) {
	raw, ok := row.RawValue(name)
	if !ok {
		return nil, &ColumnNotFoundError{Name: name}
	}
	if nullable.IsNull(raw) {
		return nil, nil
	}

	elems, err := pgtext.ArrayDecoder[E](registryOrDefault(reg)).DecodeValue(raw)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", name, err)
	}
	return elems, nil
}

func registryOrDefault(reg *pgtext.Registry) *pgtext.Registry {
	if reg == nil {
		return pgtext.DefaultRegistry()
	}
	return reg
}

// Getter reads typed column values from a Row.
type Getter struct {
	Row      Row
	Registry *pgtext.Registry
}

// NewGetter returns a Getter for row. If reg is nil the default registry is used.
func NewGetter(row Row, reg *pgtext.Registry) *Getter {
	return &Getter{Row: row, Registry: registryOrDefault(reg)}
}

func (g *Getter) String(name string) (string, error) {
	return Get[string](g.Row, g.Registry, name)
}

func (g *Getter) StringNullable(name string) (*string, error) {
	return GetNullable[string](g.Row, g.Registry, name)
}

func (g *Getter) Bool(name string) (bool, error) {
	return Get[bool](g.Row, g.Registry, name)
}

func (g *Getter) BoolNullable(name string) (*bool, error) {
	return GetNullable[bool](g.Row, g.Registry, name)
}

func (g *Getter) Int16(name string) (int16, error) {
	return Get[int16](g.Row, g.Registry, name)
}

func (g *Getter) Int16Nullable(name string) (*int16, error) {
	return GetNullable[int16](g.Row, g.Registry, name)
}

func (g *Getter) Int32(name string) (int32, error) {
	return Get[int32](g.Row, g.Registry, name)
}

func (g *Getter) Int32Nullable(name string) (*int32, error) {
	return GetNullable[int32](g.Row, g.Registry, name)
}

func (g *Getter) Int64(name string) (int64, error) {
	return Get[int64](g.Row, g.Registry, name)
}

func (g *Getter) Int64Nullable(name string) (*int64, error) {
	return GetNullable[int64](g.Row, g.Registry, name)
}

func (g *Getter) Float32(name string) (float32, error) {
	return Get[float32](g.Row, g.Registry, name)
}

func (g *Getter) Float32Nullable(name string) (*float32, error) {
	return GetNullable[float32](g.Row, g.Registry, name)
}

func (g *Getter) Float64(name string) (float64, error) {
	return Get[float64](g.Row, g.Registry, name)
}

func (g *Getter) Float64Nullable(name string) (*float64, error) {
	return GetNullable[float64](g.Row, g.Registry, name)
}

func (g *Getter) Decimal(name string) (decimal.Decimal, error) {
	return Get[decimal.Decimal](g.Row, g.Registry, name)
}

func (g *Getter) DecimalNullable(name string) (*decimal.Decimal, error) {
	return GetNullable[decimal.Decimal](g.Row, g.Registry, name)
}

// Bytes reads a bytea column. It returns nil for NULL.
func (g *Getter) Bytes(name string) ([]byte, error) {
	p, err := GetNullable[[]byte](g.Row, g.Registry, name)
	if p == nil || err != nil {
		return nil, err
	}
	return *p, nil
}

// Date reads a date column as midnight UTC. A timestamp value is truncated to its date.
func (g *Getter) Date(name string) (time.Time, error) {
	t, err := Get[time.Time](g.Row, g.Registry, name)
	if err != nil {
		return time.Time{}, err
	}
	return toDate(t), nil
}

func (g *Getter) DateNullable(name string) (*time.Time, error) {
	t, err := GetNullable[time.Time](g.Row, g.Registry, name)
	if t == nil || err != nil {
		return nil, err
	}
	d := toDate(*t)
	return &d, nil
}

func (g *Getter) Time(name string) (pgtext.Time, error) {
	return Get[pgtext.Time](g.Row, g.Registry, name)
}

func (g *Getter) TimeNullable(name string) (*pgtext.Time, error) {
	return GetNullable[pgtext.Time](g.Row, g.Registry, name)
}

func (g *Getter) TimeTZ(name string) (pgtext.TimeTZ, error) {
	return Get[pgtext.TimeTZ](g.Row, g.Registry, name)
}

func (g *Getter) TimeTZNullable(name string) (*pgtext.TimeTZ, error) {
	return GetNullable[pgtext.TimeTZ](g.Row, g.Registry, name)
}

// Timestamp reads a timestamp without time zone. The wall clock reading is returned in UTC.
func (g *Getter) Timestamp(name string) (time.Time, error) {
	t, err := Get[time.Time](g.Row, g.Registry, name)
	if err != nil {
		return time.Time{}, err
	}
	return toWallClockUTC(t), nil
}

func (g *Getter) TimestampNullable(name string) (*time.Time, error) {
	t, err := GetNullable[time.Time](g.Row, g.Registry, name)
	if t == nil || err != nil {
		return nil, err
	}
	ts := toWallClockUTC(*t)
	return &ts, nil
}

// Timestamptz reads a timestamp with time zone keeping the offset it was returned with.
func (g *Getter) Timestamptz(name string) (time.Time, error) {
	return Get[time.Time](g.Row, g.Registry, name)
}

func (g *Getter) TimestamptzNullable(name string) (*time.Time, error) {
	return GetNullable[time.Time](g.Row, g.Registry, name)
}

func (g *Getter) UUID(name string) (uuid.UUID, error) {
	return Get[uuid.UUID](g.Row, g.Registry, name)
}

func (g *Getter) UUIDNullable(name string) (*uuid.UUID, error) {
	return GetNullable[uuid.UUID](g.Row, g.Registry, name)
}

// Composite returns a Reader over the composite literal in the named column, or nil for NULL.
func (g *Getter) Composite(name string) (*pgtext.Reader, error) {
	s, err := GetNullable[string](g.Row, g.Registry, name)
	if s == nil || err != nil {
		return nil, err
	}
	return pgtext.NewReader(g.Registry, *s), nil
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toWallClockUTC(t time.Time) time.Time {
	if t.Location() == time.UTC {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
