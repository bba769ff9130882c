package pgtext_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/rowmap/rowmap/pgtext"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArray(t *testing.T) {
	elems, err := pgtext.ParseArray[int32](nil, `{1,NULL,3}`)
	require.NoError(t, err)
	require.Len(t, elems, 3)
	assert.Equal(t, int32(1), *elems[0])
	assert.Nil(t, elems[1])
	assert.Equal(t, int32(3), *elems[2])

	elems, err = pgtext.ParseArray[int32](nil, `{}`)
	require.NoError(t, err)
	require.NotNil(t, elems)
	assert.Len(t, elems, 0)

	elems, err = pgtext.ParseArray[int32](nil, `[2:3]={ 5 , 6 }`)
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, int32(6), *elems[1])
}

func TestParseArrayEmptyElement(t *testing.T) {
	_, err := pgtext.ParseArray[int32](nil, `{1,,3}`)
	var parseErr *pgtext.FieldParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, pgtext.KindInt4, parseErr.Kind)

	_, err = pgtext.ParseArray[string](nil, `{a,,c}`)
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, pgtext.KindText, parseErr.Kind)

	texts, err := pgtext.ParseArray[string](nil, `{1,"",3}`)
	require.NoError(t, err)
	require.Len(t, texts, 3)
	assert.Equal(t, "", *texts[1])
}

func TestParseArrayElementError(t *testing.T) {
	_, err := pgtext.ParseArray[int16](nil, `{1,x}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array element 1")

	var parseErr *pgtext.FieldParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "x", parseErr.Text)

	_, err = pgtext.ParseArray[int16](nil, `{1,2`)
	assert.ErrorIs(t, err, pgtext.ErrTruncatedLiteral)
}

func TestParseArrayQuotedNull(t *testing.T) {
	elems, err := pgtext.ParseArray[string](nil, `{NULL,"NULL",Null}`)
	require.NoError(t, err)
	require.Len(t, elems, 3)
	assert.Nil(t, elems[0])
	assert.Equal(t, "NULL", *elems[1])
	assert.Nil(t, elems[2])
}

func TestParseArrayMultidimensional(t *testing.T) {
	rows, err := pgtext.ParseArray[[]*int32](nil, `{{1,2},{3,NULL}}`)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Len(t, *rows[0], 2)
	assert.Equal(t, int32(2), *(*rows[0])[1])
	assert.Nil(t, (*rows[1])[1])
}

func TestParseArrayOfTemporal(t *testing.T) {
	elems, err := pgtext.ParseArray[time.Time](nil, `{"2024-01-02 03:04:05+00","2024-01-02 03:04:05",2024-01-02}`)
	require.NoError(t, err)
	require.Len(t, elems, 3)
	assert.True(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Equal(*elems[0]))
	assert.True(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Equal(*elems[1]))
	assert.True(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).Equal(*elems[2]))
}

func TestParseArrayOfNumeric(t *testing.T) {
	decimals, err := pgtext.ParseArray[decimal.Decimal](nil, `{1.5,-0.25}`)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-0.25").Equal(*decimals[1]))

	apds, err := pgtext.ParseArray[apd.Decimal](nil, `{1.5,NaN}`)
	require.NoError(t, err)
	assert.Equal(t, "1.5", apds[0].String())
	assert.Equal(t, apd.NaN, apds[1].Form)
}

func TestParseArrayOfComposites(t *testing.T) {
	reg := pgtext.NewRegistry()
	pgtext.RegisterComposite(reg, readPoint)

	points, err := pgtext.ParseArray[point](reg, `{"(1,2)",NULL,"(3.5,-4)"}`)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, point{X: 1, Y: 2}, *points[0])
	assert.Nil(t, points[1])
	assert.Equal(t, point{X: 3.5, Y: -4}, *points[2])
}

func TestParseArrayUnknownElement(t *testing.T) {
	_, err := pgtext.ParseArray[struct{ A int }](nil, `{1}`)
	var notFound *pgtext.DecoderNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestArrayDecoder(t *testing.T) {
	reg := pgtext.NewRegistry()
	dec := pgtext.ArrayDecoder[int64](reg)

	elems, err := dec.DecodeValue([]byte(`{7,8}`))
	require.NoError(t, err)
	assert.Len(t, elems, 2)

	same := []*int64{ptr(int64(1))}
	elems, err = dec.DecodeValue(same)
	require.NoError(t, err)
	assert.Equal(t, same, elems)

	elems, err = dec.DecodeValue(sql.NullString{String: "{9}", Valid: true})
	require.NoError(t, err)
	assert.Equal(t, int64(9), *elems[0])

	_, err = dec.DecodeValue(nil)
	var mismatch *pgtext.DecodeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "NULL", mismatch.Actual)

	_, err = dec.DecodeValue(42)
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "int", mismatch.Actual)
}

func TestArrayDecoderRegistersNestedArrays(t *testing.T) {
	reg := pgtext.NewRegistry()

	_, err := pgtext.Resolve[[]*point](reg)
	require.Error(t, err)

	pgtext.RegisterComposite(reg, readPoint)
	pgtext.Register(reg, pgtext.ArrayDecoder[point](reg))

	points, err := pgtext.Decode[[]*point](reg, `{"(1,1)"}`)
	require.NoError(t, err)
	assert.Equal(t, point{X: 1, Y: 1}, *points[0])
}
