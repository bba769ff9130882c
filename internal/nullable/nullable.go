// Package nullable detects SQL NULL among raw driver values.
package nullable

import (
	"database/sql/driver"
	"reflect"
)

// IsNil returns true if value is any type of nil. e.g. nil or []byte(nil).
func IsNil(value any) bool {
	if value == nil {
		return true
	}

	refVal := reflect.ValueOf(value)
	switch refVal.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr, reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return refVal.IsNil()
	default:
		return false
	}
}

// IsNull returns true if value is SQL NULL: any type of nil, or a driver.Valuer such as sql.NullString whose Value is
// nil.
func IsNull(value any) bool {
	if IsNil(value) {
		return true
	}

	if valuer, ok := value.(driver.Valuer); ok {
		v, err := valuer.Value()
		return err == nil && IsNil(v)
	}

	return false
}

// Unwrap returns the driver.Value of value when value is a driver.Valuer. ok is false when value is not a
// driver.Valuer.
func Unwrap(value any) (v any, ok bool, err error) {
	valuer, ok := value.(driver.Valuer)
	if !ok {
		return nil, false, nil
	}

	v, err = valuer.Value()
	return v, true, err
}

// NormalizeSlice converts all NULL values in s into untyped nils. Other values are unmodified. s is mutated in place.
func NormalizeSlice(s []any) {
	for i := range s {
		if IsNull(s[i]) {
			s[i] = nil
		}
	}
}
