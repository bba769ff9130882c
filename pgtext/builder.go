package pgtext

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// CompositeValuer is implemented by application types that write themselves as the ordered fields of a composite
// literal.
type CompositeValuer interface {
	AppendFields(b *Builder) error
}

// Builder assembles a composite literal such as (1,"a b",) or an array literal such as {1,NULL,3} from typed
// values. Each Append method takes a pointer or nil-able value where nil appends SQL NULL.
//
// A Builder is not safe for concurrent use. Build may be called more than once; each call returns the literal for
// the fields appended so far.
type Builder struct {
	fields []string
	array  bool
	err    error
}

// NewCompositeBuilder returns a Builder that produces a parenthesized composite literal. A composite with no fields
// cannot be written: the literal () of an empty builder reads back as one NULL field.
func NewCompositeBuilder() *Builder {
	return &Builder{}
}

// NewArrayBuilder returns a Builder that produces a brace delimited array literal.
func NewArrayBuilder() *Builder {
	return &Builder{array: true}
}

// Len returns the number of fields appended so far.
func (b *Builder) Len() int {
	return len(b.fields)
}

// AppendNull appends SQL NULL. In a composite that is an empty unquoted field; in an array it is the NULL keyword.
func (b *Builder) AppendNull() {
	if b.array {
		b.fields = append(b.fields, "NULL")
	} else {
		b.fields = append(b.fields, "")
	}
}

func (b *Builder) appendText(s string) {
	b.fields = append(b.fields, b.quoteIfNeeded(s))
}

func (b *Builder) AppendBool(v *bool) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(formatBool(*v))
}

func (b *Builder) AppendInt16(v *int16) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(strconv.FormatInt(int64(*v), 10))
}

func (b *Builder) AppendInt32(v *int32) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(strconv.FormatInt(int64(*v), 10))
}

func (b *Builder) AppendInt64(v *int64) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(strconv.FormatInt(*v, 10))
}

func (b *Builder) AppendFloat32(v *float32) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(formatFloat(float64(*v), 32))
}

func (b *Builder) AppendFloat64(v *float64) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(formatFloat(*v, 64))
}

func (b *Builder) AppendDecimal(v *decimal.Decimal) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(v.String())
}

func (b *Builder) AppendText(v *string) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(*v)
}

// AppendBytes appends v in bytea hex format. A nil slice is NULL; an empty non-nil slice is an empty bytea.
func (b *Builder) AppendBytes(v []byte) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(formatBytea(v))
}

// AppendDate appends the calendar date of v, ignoring its clock and location.
func (b *Builder) AppendDate(v *time.Time) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(formatDate(*v))
}

func (b *Builder) AppendTime(v *Time) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(formatTime(*v))
}

func (b *Builder) AppendTimeTZ(v *TimeTZ) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(formatTimeTZ(*v))
}

// AppendTimestamp appends the wall clock reading of v. The location of v is discarded.
func (b *Builder) AppendTimestamp(v *time.Time) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(formatTimestamp(*v))
}

// AppendTimestamptz appends v with its UTC offset.
func (b *Builder) AppendTimestamptz(v *time.Time) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(formatTimestamptz(*v))
}

func (b *Builder) AppendUUID(v *uuid.UUID) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.appendText(v.String())
}

// AppendComposite appends the literal built by nested as a single field. A nil nested is NULL.
func (b *Builder) AppendComposite(nested *Builder) {
	b.appendNested(nested)
}

// AppendArray appends the literal built by nested as a single field. A nil nested is NULL. When b is itself an array
// builder the nested array is written unquoted as another dimension.
func (b *Builder) AppendArray(nested *Builder) {
	if nested != nil && b.array && nested.array {
		s, err := nested.Build()
		if err != nil {
			b.setErr(err)
			return
		}
		b.fields = append(b.fields, s)
		return
	}
	b.appendNested(nested)
}

func (b *Builder) appendNested(nested *Builder) {
	if nested == nil {
		b.AppendNull()
		return
	}

	s, err := nested.Build()
	if err != nil {
		b.setErr(err)
		return
	}
	b.appendText(s)
}

// AppendValue appends v choosing the text format by its Go type. nil is NULL. time.Time is written as a timestamp
// with offset; use AppendDate or AppendTimestamp for the other temporal kinds.
func (b *Builder) AppendValue(v any) {
	if b.err != nil {
		return
	}

	switch v := v.(type) {
	case nil:
		b.AppendNull()
	case bool:
		b.AppendBool(&v)
	case *bool:
		b.AppendBool(v)
	case int16:
		b.AppendInt16(&v)
	case *int16:
		b.AppendInt16(v)
	case int32:
		b.AppendInt32(&v)
	case *int32:
		b.AppendInt32(v)
	case int64:
		b.AppendInt64(&v)
	case *int64:
		b.AppendInt64(v)
	case int:
		b.appendText(strconv.Itoa(v))
	case float32:
		b.AppendFloat32(&v)
	case *float32:
		b.AppendFloat32(v)
	case float64:
		b.AppendFloat64(&v)
	case *float64:
		b.AppendFloat64(v)
	case string:
		b.AppendText(&v)
	case *string:
		b.AppendText(v)
	case []byte:
		b.AppendBytes(v)
	case decimal.Decimal:
		b.AppendDecimal(&v)
	case *decimal.Decimal:
		b.AppendDecimal(v)
	case apd.Decimal:
		b.appendText(v.String())
	case *apd.Decimal:
		if v == nil {
			b.AppendNull()
			return
		}
		b.appendText(v.String())
	case uuid.UUID:
		b.AppendUUID(&v)
	case *uuid.UUID:
		b.AppendUUID(v)
	case time.Time:
		b.AppendTimestamptz(&v)
	case *time.Time:
		b.AppendTimestamptz(v)
	case Time:
		b.AppendTime(&v)
	case *Time:
		b.AppendTime(v)
	case TimeTZ:
		b.AppendTimeTZ(&v)
	case *TimeTZ:
		b.AppendTimeTZ(v)
	case *Builder:
		if v != nil && v.array {
			b.AppendArray(v)
		} else {
			b.AppendComposite(v)
		}
	case CompositeValuer:
		nested := NewCompositeBuilder()
		if err := v.AppendFields(nested); err != nil {
			b.setErr(err)
			return
		}
		b.AppendComposite(nested)
	case driver.Valuer:
		dv, err := v.Value()
		if err != nil {
			b.setErr(err)
			return
		}
		if _, again := dv.(driver.Valuer); again {
			b.setErr(fmt.Errorf("unable to encode %T: Value returned another driver.Valuer", v))
			return
		}
		b.AppendValue(dv)
	default:
		b.setErr(fmt.Errorf("unable to encode %T into %s literal", v, b.kind()))
	}
}

// Build returns the finished literal. It returns the first error encountered by AppendValue or by a nested builder.
// An empty composite builder returns (), which is the literal of a single NULL field, and an empty array builder
// returns {}.
func (b *Builder) Build() (string, error) {
	if b.err != nil {
		return "", b.err
	}

	open, close := "(", ")"
	if b.array {
		open, close = "{", "}"
	}

	return open + strings.Join(b.fields, ",") + close, nil
}

// Err returns the first error encountered while appending.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) kind() Kind {
	if b.array {
		return KindArray
	}
	return KindRecord
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoteField(src string) string {
	return `"` + quoteReplacer.Replace(src) + `"`
}

func (b *Builder) quoteIfNeeded(src string) string {
	if src == "" || strings.ContainsAny(src, "{}()\\\",") || strings.IndexFunc(src, isSpaceRune) >= 0 {
		return quoteField(src)
	}
	if b.array && strings.EqualFold(src, "NULL") {
		return quoteField(src)
	}
	return src
}

func isSpaceRune(r rune) bool {
	return r < 0x80 && isSpace(byte(r))
}

// EncodeComposite returns the composite literal for v.
func EncodeComposite(v CompositeValuer) (string, error) {
	b := NewCompositeBuilder()
	if err := v.AppendFields(b); err != nil {
		return "", err
	}
	return b.Build()
}

// EncodeArray returns the array literal for elems. A nil element is written as NULL.
func EncodeArray[E any](elems []*E) (string, error) {
	b := NewArrayBuilder()
	for _, e := range elems {
		if e == nil {
			b.AppendNull()
			continue
		}
		b.AppendValue(*e)
	}
	return b.Build()
}
