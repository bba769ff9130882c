// Package pgxrow adapts rows returned by github.com/jackc/pgx/v5 to rowmap.Row.
//
// Columns received in the text format are exposed as their literal text so composite and array columns can be read
// with pgtext. Columns received in the binary format are exposed as the values pgx decodes them to.
package pgxrow

import (
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rowmap/rowmap"
	"github.com/rowmap/rowmap/internal/nullable"
	"github.com/rowmap/rowmap/pgtext"
)

// Row is a rowmap.Row holding a copy of one pgx result row. It remains valid after the pgx rows are advanced or
// closed.
type Row struct {
	fields []pgconn.FieldDescription
	raw    [][]byte
	values []any
}

// New copies the current row of row.
func New(row pgx.CollectableRow) (*Row, error) {
	fields := row.FieldDescriptions()
	rawValues := row.RawValues()

	r := &Row{
		fields: fields,
		raw:    make([][]byte, len(rawValues)),
	}

	binary := false
	for i, buf := range rawValues {
		if buf != nil {
			r.raw[i] = append([]byte{}, buf...)
		}
		if i < len(fields) && fields[i].Format == pgx.BinaryFormatCode {
			binary = true
		}
	}

	if binary {
		values, err := row.Values()
		if err != nil {
			return nil, err
		}
		nullable.NormalizeSlice(values)
		r.values = values
	}

	return r, nil
}

// RawValue implements rowmap.Row. Column names are matched case-insensitively.
func (r *Row) RawValue(name string) (any, bool) {
	i := fieldPosByName(r.fields, name)
	if i < 0 || i >= len(r.raw) {
		return nil, false
	}

	if r.raw[i] == nil {
		return nil, true
	}
	if r.fields[i].Format == pgx.TextFormatCode {
		return string(r.raw[i]), true
	}
	return r.values[i], true
}

// FieldDescriptions returns the descriptions of the row's columns.
func (r *Row) FieldDescriptions() []pgconn.FieldDescription {
	return r.fields
}

func fieldPosByName(fldDescs []pgconn.FieldDescription, field string) int {
	for i, desc := range fldDescs {
		if strings.EqualFold(desc.Name, field) {
			return i
		}
	}
	return -1
}

// RowTo returns a pgx.RowToFunc that maps each row with fn. It is intended for use with pgx.CollectRows and
// pgx.CollectOneRow. If reg is nil the default registry is used.
func RowTo[T any](reg *pgtext.Registry, fn func(g *rowmap.Getter) (T, error)) pgx.RowToFunc[T] {
	return func(row pgx.CollectableRow) (T, error) {
		r, err := New(row)
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(rowmap.NewGetter(r, reg))
	}
}

// RowToMap returns the row as a map from column name to raw value in the form RawValue returns.
func RowToMap(row pgx.CollectableRow) (rowmap.Map, error) {
	r, err := New(row)
	if err != nil {
		return nil, err
	}

	m := make(rowmap.Map, len(r.fields))
	for _, fd := range r.fields {
		m[fd.Name], _ = r.RawValue(fd.Name)
	}
	return m, nil
}
