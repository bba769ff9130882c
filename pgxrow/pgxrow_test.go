package pgxrow_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rowmap/rowmap"
	"github.com/rowmap/rowmap/pgtext"
	"github.com/rowmap/rowmap/pgxrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	fields    []pgconn.FieldDescription
	raw       [][]byte
	values    []any
	valuesErr error
	valuesN   int
}

func (r *fakeRow) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRow) Scan(dest ...any) error                       { return errors.New("not supported") }
func (r *fakeRow) RawValues() [][]byte                          { return r.raw }

func (r *fakeRow) Values() ([]any, error) {
	r.valuesN++
	return r.values, r.valuesErr
}

func textRow() *fakeRow {
	return &fakeRow{
		fields: []pgconn.FieldDescription{
			{Name: "id", Format: pgx.TextFormatCode},
			{Name: "Location", Format: pgx.TextFormatCode},
			{Name: "tags", Format: pgx.TextFormatCode},
			{Name: "note", Format: pgx.TextFormatCode},
		},
		raw: [][]byte{
			[]byte("42"),
			[]byte(`("1.5",-2)`),
			[]byte(`{x,NULL}`),
			nil,
		},
	}
}

func TestRowTextFormat(t *testing.T) {
	fake := textRow()
	row, err := pgxrow.New(fake)
	require.NoError(t, err)
	assert.Equal(t, 0, fake.valuesN)

	fake.raw[0][0] = '9'

	v, ok := row.RawValue("id")
	require.True(t, ok)
	assert.Equal(t, "42", v)

	v, ok = row.RawValue("location")
	require.True(t, ok)
	assert.Equal(t, `("1.5",-2)`, v)

	v, ok = row.RawValue("note")
	require.True(t, ok)
	assert.Nil(t, v)

	_, ok = row.RawValue("missing")
	assert.False(t, ok)
	assert.Len(t, row.FieldDescriptions(), 4)
}

func TestRowBinaryFormat(t *testing.T) {
	fake := &fakeRow{
		fields: []pgconn.FieldDescription{
			{Name: "n", Format: pgx.BinaryFormatCode},
			{Name: "s", Format: pgx.TextFormatCode},
			{Name: "missing", Format: pgx.BinaryFormatCode},
		},
		raw:    [][]byte{{0, 0, 0, 5}, []byte("hi"), nil},
		values: []any{int32(5), "hi", nil},
	}

	row, err := pgxrow.New(fake)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.valuesN)

	g := rowmap.NewGetter(row, nil)

	n, err := g.Int64("n")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	s, err := g.String("s")
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	p, err := g.Int32Nullable("missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestRowValuesError(t *testing.T) {
	fake := &fakeRow{
		fields:    []pgconn.FieldDescription{{Name: "n", Format: pgx.BinaryFormatCode}},
		raw:       [][]byte{{1}},
		valuesErr: errors.New("decode failed"),
	}

	_, err := pgxrow.New(fake)
	require.EqualError(t, err, "decode failed")
}

type location struct {
	X, Y float64
}

func TestRowTo(t *testing.T) {
	reg := pgtext.NewRegistry()
	pgtext.RegisterComposite(reg, func(r *pgtext.Reader) (location, error) {
		x, err := r.ReadFloat64()
		if err != nil {
			return location{}, err
		}
		y, err := r.ReadFloat64()
		if err != nil {
			return location{}, err
		}
		return location{X: *x, Y: *y}, nil
	})

	type record struct {
		ID       int64
		Location location
		Tags     []*string
		Note     *string
	}

	fn := pgxrow.RowTo(reg, func(g *rowmap.Getter) (record, error) {
		var rec record
		var err error
		if rec.ID, err = g.Int64("id"); err != nil {
			return rec, err
		}
		if rec.Location, err = rowmap.Get[location](g.Row, g.Registry, "location"); err != nil {
			return rec, err
		}
		if rec.Tags, err = rowmap.GetArray[string](g.Row, g.Registry, "tags"); err != nil {
			return rec, err
		}
		rec.Note, err = g.StringNullable("note")
		return rec, err
	})

	rec, err := fn(textRow())
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.ID)
	assert.Equal(t, location{X: 1.5, Y: -2}, rec.Location)
	require.Len(t, rec.Tags, 2)
	assert.Equal(t, "x", *rec.Tags[0])
	assert.Nil(t, rec.Tags[1])
	assert.Nil(t, rec.Note)
}

func TestRowToMap(t *testing.T) {
	m, err := pgxrow.RowToMap(textRow())
	require.NoError(t, err)
	assert.Equal(t, rowmap.Map{
		"id":       "42",
		"Location": `("1.5",-2)`,
		"tags":     `{x,NULL}`,
		"note":     nil,
	}, m)
}
