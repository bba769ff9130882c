package pgtext

import (
	"errors"
	"fmt"

	"github.com/rowmap/rowmap/internal/nullable"
)

var errEmptyArrayElement = errors.New("empty unquoted array element")

// ParseArray decodes the array literal src with the decoder reg resolves for E. NULL elements are nil. An empty
// unquoted element is rejected for every element kind; an empty string element must be quoted as "".
//
// Multidimensional arrays are arrays of arrays: parse {{1,2},{3,4}} with E = []*int32.
func ParseArray[E any](reg *Registry, src string) ([]*E, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}

	dec, err := Resolve[E](reg)
	if err != nil {
		return nil, err
	}

	c := NewArrayCursor(src)
	elems := []*E{}
	for i := 0; c.Next(); i++ {
		f := c.Field()
		if f.Null {
			elems = append(elems, nil)
			continue
		}
		if f.Text == "" && !f.Quoted {
			return nil, &FieldParseError{Kind: kindOf[E](), Text: f.Text, Err: errEmptyArrayElement}
		}

		v, err := dec.DecodeValue(f.Text)
		if err != nil {
			return nil, fmt.Errorf("array element %d: %w", i, err)
		}
		elems = append(elems, &v)
	}

	if err := c.Err(); err != nil {
		return nil, err
	}

	return elems, nil
}

// ArrayDecoder returns a Decoder for arrays of E. It accepts array literal text as a string or []byte and a []*E
// unchanged. Registering it makes []*E resolvable for element types that have no built-in array mapping.
func ArrayDecoder[E any](reg *Registry) Decoder[[]*E] {
	return DecoderFunc[[]*E](func(src any) ([]*E, error) {
		return decodeArray[E](reg, src, true)
	})
}

func decodeArray[E any](reg *Registry, src any, unwrap bool) ([]*E, error) {
	switch s := src.(type) {
	case nil:
		return nil, &DecodeMismatchError{Expected: typeFor[[]*E](), Actual: "NULL"}
	case []*E:
		return s, nil
	case string:
		return ParseArray[E](reg, s)
	case []byte:
		return ParseArray[E](reg, string(s))
	}

	if v, ok, err := nullable.Unwrap(src); ok && unwrap {
		if err != nil {
			return nil, &DecodeMismatchError{Expected: typeFor[[]*E](), Actual: typeName(src), Err: err}
		}
		return decodeArray[E](reg, v, false)
	}

	return nil, &DecodeMismatchError{Expected: typeFor[[]*E](), Actual: typeName(src)}
}
