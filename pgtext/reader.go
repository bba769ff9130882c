package pgtext

import (
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Reader reads the fields of a composite literal in order. Composite literals carry no field names so the caller
// must read fields in the order and with the kinds of the composite type's definition.
//
// Each Read method consumes exactly one field and returns nil for SQL NULL. Surrounding ASCII whitespace of an
// unquoted field is ignored for every kind except text and bytea. Reading past the last field returns
// ErrNoMoreFields. Unread trailing fields are not an error.
type Reader struct {
	reg    *Registry
	cursor *Cursor
}

// NewReader returns a Reader over the composite literal src. Array and nested composite fields are decoded with reg.
// If reg is nil the default registry is used.
func NewReader(reg *Registry, src string) *Reader {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Reader{reg: reg, cursor: NewCompositeCursor(src)}
}

// Registry returns the registry used for array and nested composite fields.
func (r *Reader) Registry() *Registry {
	return r.reg
}

// AtEnd returns true when every field has been read.
func (r *Reader) AtEnd() bool {
	return r.cursor.AtEnd()
}

// ReadField returns the next raw field token.
func (r *Reader) ReadField() (Field, error) {
	if r.cursor.Next() {
		return r.cursor.Field(), nil
	}
	if err := r.cursor.Err(); err != nil {
		return Field{}, err
	}
	return Field{}, ErrNoMoreFields
}

// Skip consumes one field without parsing it.
func (r *Reader) Skip() error {
	_, err := r.ReadField()
	return err
}

func readField[T any](r *Reader, kind Kind, parse func(string) (T, error)) (*T, error) {
	f, err := r.ReadField()
	if err != nil {
		return nil, err
	}
	if f.Null {
		return nil, nil
	}

	text := f.Text
	if !f.Quoted && kind != KindText && kind != KindBytea {
		text = strings.TrimFunc(text, isSpaceRune)
	}

	v, err := parseText(kind, text, parse)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Reader) ReadBool() (*bool, error) {
	return readField(r, KindBool, parseBool)
}

func (r *Reader) ReadInt16() (*int16, error) {
	return readField(r, KindInt2, parseInt16)
}

func (r *Reader) ReadInt32() (*int32, error) {
	return readField(r, KindInt4, parseInt32)
}

func (r *Reader) ReadInt64() (*int64, error) {
	return readField(r, KindInt8, parseInt64)
}

func (r *Reader) ReadFloat32() (*float32, error) {
	return readField(r, KindFloat4, parseFloat32)
}

func (r *Reader) ReadFloat64() (*float64, error) {
	return readField(r, KindFloat8, parseFloat64)
}

func (r *Reader) ReadDecimal() (*decimal.Decimal, error) {
	return readField(r, KindNumeric, parseDecimal)
}

func (r *Reader) ReadText() (*string, error) {
	return readField(r, KindText, parseString)
}

// ReadBytes reads a bytea field in hex format. It returns nil for NULL and an empty non-nil slice for an empty bytea.
func (r *Reader) ReadBytes() ([]byte, error) {
	p, err := readField(r, KindBytea, parseBytea)
	if p == nil || err != nil {
		return nil, err
	}
	if *p == nil {
		return []byte{}, nil
	}
	return *p, nil
}

// ReadDate reads a date field as midnight UTC.
func (r *Reader) ReadDate() (*time.Time, error) {
	return readField(r, KindDate, parseDate)
}

func (r *Reader) ReadTime() (*Time, error) {
	return readField(r, KindTime, parseTime)
}

func (r *Reader) ReadTimeTZ() (*TimeTZ, error) {
	return readField(r, KindTimeTZ, parseTimeTZ)
}

// ReadTimestamp reads a timestamp without time zone. The result is in UTC.
func (r *Reader) ReadTimestamp() (*time.Time, error) {
	return readField(r, KindTimestamp, parseTimestamp)
}

// ReadTimestamptz reads a timestamp with offset. The result keeps the offset as a fixed zone.
func (r *Reader) ReadTimestamptz() (*time.Time, error) {
	return readField(r, KindTimestamptz, parseTimestamptz)
}

func (r *Reader) ReadUUID() (*uuid.UUID, error) {
	return readField(r, KindUUID, parseUUID)
}

// ReadComposite reads a nested composite field and returns a Reader scoped to it, or nil for NULL.
func (r *Reader) ReadComposite() (*Reader, error) {
	f, err := r.ReadField()
	if err != nil {
		return nil, err
	}
	if f.Null {
		return nil, nil
	}

	child := NewReader(r.reg, f.Text)
	if err := child.cursor.Err(); err != nil {
		return nil, &FieldParseError{Kind: KindRecord, Text: f.Text, Err: err}
	}
	return child, nil
}

// ReadValue reads the next field with the decoder r's registry resolves for T. It returns nil for NULL.
func ReadValue[T any](r *Reader) (*T, error) {
	dec, err := Resolve[T](r.reg)
	if err != nil {
		return nil, err
	}

	f, err := r.ReadField()
	if err != nil {
		return nil, err
	}
	if f.Null {
		return nil, nil
	}

	v, err := dec.DecodeValue(f.Text)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReadArray reads an array field whose elements are decoded as E. It returns a nil slice for a NULL array and a
// nil element for each NULL element.
func ReadArray[E any](r *Reader) ([]*E, error) {
	f, err := r.ReadField()
	if err != nil {
		return nil, err
	}
	if f.Null {
		return nil, nil
	}

	return ParseArray[E](r.reg, f.Text)
}
