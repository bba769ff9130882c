package pgtext

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rowmap/rowmap/tracelog"
)

var (
	// ErrNoMoreFields occurs when a field is requested after the last field of a literal was read.
	ErrNoMoreFields = errors.New("no more fields in literal")

	// ErrTruncatedLiteral occurs when the literal text ends inside a quoted field or before its closing delimiter.
	ErrTruncatedLiteral = errors.New("truncated literal")

	// ErrUnbalancedLiteral occurs when a closing delimiter appears with no matching opening delimiter.
	ErrUnbalancedLiteral = errors.New("unbalanced literal")

	// ErrMalformedLiteral occurs when the literal does not start with the expected opening delimiter or has data
	// after its closing delimiter.
	ErrMalformedLiteral = errors.New("malformed literal")
)

// LiteralError is a grammar level failure while walking a composite or array literal. It unwraps to one of
// ErrTruncatedLiteral, ErrUnbalancedLiteral, or ErrMalformedLiteral.
type LiteralError struct {
	Err     error
	Offset  int
	Literal string
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Offset, quoteForError(e.Literal))
}

func (e *LiteralError) Unwrap() error {
	return e.Err
}

// FieldParseError occurs when the unescaped text of a field cannot be parsed as the requested kind.
type FieldParseError struct {
	Kind Kind
	Text string
	Err  error
}

func (e *FieldParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot parse %s as %s", quoteForError(e.Text), e.Kind)
	}
	return fmt.Sprintf("cannot parse %s as %s: %v", quoteForError(e.Text), e.Kind, e.Err)
}

func (e *FieldParseError) Unwrap() error {
	return e.Err
}

// DecoderNotFoundError occurs when a Registry has no decoder for the requested type. It is not cached so a later
// registration for Type succeeds.
type DecoderNotFoundError struct {
	Type reflect.Type
}

func (e *DecoderNotFoundError) Error() string {
	return fmt.Sprintf("no decoder registered for %v", e.Type)
}

// DecodeMismatchError occurs when a decoder exists for Expected but the raw value has an incompatible kind. Actual
// is the Go type of the raw value or "NULL".
type DecodeMismatchError struct {
	Expected reflect.Type
	Actual   string
	Err      error
}

func (e *DecodeMismatchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot decode %s into %v", e.Actual, e.Expected)
	}
	return fmt.Sprintf("cannot decode %s into %v: %v", e.Actual, e.Expected, e.Err)
}

func (e *DecodeMismatchError) Unwrap() error {
	return e.Err
}

func quoteForError(s string) string {
	return fmt.Sprintf("%q", tracelog.TruncateText(s))
}
