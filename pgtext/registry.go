package pgtext

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sync"

	"github.com/rowmap/rowmap/internal/nullable"
	"github.com/rowmap/rowmap/tracelog"
)

// Decoder converts one raw driver value into a T. Raw values are typically literal text as a string or []byte, but
// may be any value a database driver returns. DecodeValue is never called with a nil src by Decode or
// DecodeNullable.
type Decoder[T any] interface {
	DecodeValue(src any) (T, error)
}

// DecoderFunc is a wrapper around a function to satisfy the Decoder interface.
type DecoderFunc[T any] func(src any) (T, error)

// DecodeValue delegates to the wrapped function.
func (f DecoderFunc[T]) DecodeValue(src any) (T, error) {
	return f(src)
}

// Registry maps Go types to Decoders. Resolved decoders are cached for the lifetime of the Registry.
//
// Lookups are safe for concurrent use. Registrations should be completed before any lookup of the same type, which is
// usually done during program initialization.
type Registry struct {
	mux        sync.RWMutex
	decoders   map[reflect.Type]any
	structural map[reflect.Type]any

	log *tracelog.TraceLog
}

// Option configures a Registry.
type Option func(*Registry)

// WithDecoder pre-registers d as the decoder for T.
func WithDecoder[T any](d Decoder[T]) Option {
	return func(reg *Registry) {
		reg.decoders[typeFor[T]()] = d
	}
}

// WithLogger sends registry activity at or above level to logger.
func WithLogger(logger tracelog.Logger, level tracelog.LogLevel) Option {
	return func(reg *Registry) {
		reg.log = &tracelog.TraceLog{Logger: logger, LogLevel: level}
	}
}

// NewRegistry returns a Registry with the built-in decoders available and the decoders supplied by opts registered.
func NewRegistry(opts ...Option) *Registry {
	reg := &Registry{
		decoders:   make(map[reflect.Type]any),
		structural: make(map[reflect.Type]any),
	}

	for _, opt := range opts {
		opt(reg)
	}

	return reg
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process wide Registry. Register custom decoders with it in an init function.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func typeName(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%T", v)
}

// Register installs d as the decoder for T replacing any existing decoder.
func Register[T any](reg *Registry, d Decoder[T]) {
	t := typeFor[T]()

	reg.mux.Lock()
	reg.decoders[t] = d
	reg.mux.Unlock()

	reg.log.Log(context.Background(), tracelog.LogLevelInfo, "decoder registered", map[string]any{"type": t.String()})
}

// RegisterFunc installs fn as the decoder for T.
func RegisterFunc[T any](reg *Registry, fn func(src any) (T, error)) {
	Register[T](reg, DecoderFunc[T](fn))
}

// RegisterComposite installs a structural decoder for T that reads a composite literal with read. It is consulted
// only when T has no built-in mapping.
func RegisterComposite[T any](reg *Registry, read func(r *Reader) (T, error)) {
	t := typeFor[T]()

	dec := DecoderFunc[T](func(src any) (T, error) {
		return decodeComposite(reg, src, read, true)
	})

	reg.mux.Lock()
	reg.structural[t] = Decoder[T](dec)
	delete(reg.decoders, t)
	reg.mux.Unlock()

	reg.log.Log(context.Background(), tracelog.LogLevelInfo, "composite decoder registered", map[string]any{"type": t.String()})
}

// Resolve returns the decoder for T. A decoder registered with Register wins. Otherwise the built-in mapping for
// primitive, temporal, text, binary, and array kinds is tried, then a decoder installed with RegisterComposite, then
// a decoder that calls Scan if *T implements sql.Scanner. Successful resolutions are cached. Failure returns a
// *DecoderNotFoundError and is not cached.
func Resolve[T any](reg *Registry) (Decoder[T], error) {
	t := typeFor[T]()

	reg.mux.RLock()
	cached, ok := reg.decoders[t]
	structural, hasStructural := reg.structural[t]
	reg.mux.RUnlock()

	if ok {
		if reg.log.Enabled(tracelog.LogLevelTrace) {
			reg.log.Log(context.Background(), tracelog.LogLevelTrace, "decoder cache hit", map[string]any{"type": t.String()})
		}
		return cached.(Decoder[T]), nil
	}

	var dec Decoder[T]
	var source string
	if d, ok := builtinDecoderFor[T](reg); ok {
		dec, source = d, "builtin"
	} else if hasStructural {
		dec, source = structural.(Decoder[T]), "structural"
	} else if d, ok := scannerDecoderFor[T](); ok {
		dec, source = d, "scanner"
	} else {
		return nil, &DecoderNotFoundError{Type: t}
	}

	reg.mux.Lock()
	if existing, ok := reg.decoders[t]; ok {
		dec = existing.(Decoder[T])
	} else {
		reg.decoders[t] = dec
	}
	reg.mux.Unlock()

	reg.log.Log(context.Background(), tracelog.LogLevelDebug, "decoder resolved", map[string]any{"type": t.String(), "source": source})

	return dec, nil
}

// Decode resolves the decoder for T and applies it to src. A NULL src fails with a *DecodeMismatchError.
func Decode[T any](reg *Registry, src any) (T, error) {
	var zero T

	dec, err := Resolve[T](reg)
	if err != nil {
		return zero, err
	}

	if nullable.IsNull(src) {
		return zero, &DecodeMismatchError{Expected: typeFor[T](), Actual: "NULL"}
	}

	return dec.DecodeValue(src)
}

// DecodeNullable is like Decode but returns nil for a NULL src without invoking the decoder.
func DecodeNullable[T any](reg *Registry, src any) (*T, error) {
	dec, err := Resolve[T](reg)
	if err != nil {
		return nil, err
	}

	if nullable.IsNull(src) {
		return nil, nil
	}

	v, err := dec.DecodeValue(src)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func decodeComposite[T any](reg *Registry, src any, read func(r *Reader) (T, error), unwrap bool) (T, error) {
	var zero T

	var text string
	switch s := src.(type) {
	case T:
		return s, nil
	case string:
		text = s
	case []byte:
		text = string(s)
	default:
		if v, ok, err := nullable.Unwrap(src); ok && unwrap {
			if err != nil {
				return zero, &DecodeMismatchError{Expected: typeFor[T](), Actual: typeName(src), Err: err}
			}
			return decodeComposite(reg, v, read, false)
		}
		return zero, &DecodeMismatchError{Expected: typeFor[T](), Actual: typeName(src)}
	}

	r := NewReader(reg, text)
	if err := r.cursor.Err(); err != nil {
		return zero, err
	}
	return read(r)
}

func scannerDecoderFor[T any]() (Decoder[T], bool) {
	if _, ok := any((*T)(nil)).(sql.Scanner); !ok {
		return nil, false
	}

	return DecoderFunc[T](func(src any) (T, error) {
		var v T
		if err := any(&v).(sql.Scanner).Scan(src); err != nil {
			return v, &DecodeMismatchError{Expected: typeFor[T](), Actual: typeName(src), Err: err}
		}
		return v, nil
	}), true
}
