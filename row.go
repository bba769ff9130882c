package rowmap

import (
	"fmt"
	"strings"
)

// Row supplies the raw values of one result row by column name.
type Row interface {
	// RawValue returns the raw driver value of the named column. ok is false if the row has no such column. A SQL
	// NULL is returned as nil with ok true.
	RawValue(name string) (value any, ok bool)
}

// ColumnNotFoundError occurs when a column is requested that the row does not have.
type ColumnNotFoundError struct {
	Name string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in row", e.Name)
}

// Values is a Row backed by parallel slices of column names and raw values. Names are matched case-insensitively
// and the first matching column wins.
type Values struct {
	names  []string
	values []any
}

// NewValues returns a Row over names and values. values[i] is the raw value of column names[i].
func NewValues(names []string, values []any) (*Values, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("%d column names but %d values", len(names), len(values))
	}
	return &Values{names: names, values: values}, nil
}

// RawValue implements Row.
func (v *Values) RawValue(name string) (any, bool) {
	i := columnPosByName(v.names, name)
	if i < 0 {
		return nil, false
	}
	return v.values[i], true
}

// Names returns the column names in order.
func (v *Values) Names() []string {
	return v.names
}

func columnPosByName(names []string, name string) int {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

// Map is a Row backed by a map from exact column name to raw value.
type Map map[string]any

// RawValue implements Row.
func (m Map) RawValue(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}
