package pgtext

import (
	"strconv"
	"strings"
)

// Field is one token read from a composite or array literal.
type Field struct {
	// Text is the unescaped field text. It is empty when Null is true.
	Text string

	// Null is true when the field is SQL NULL: an empty unquoted composite field or an unquoted NULL array element.
	Null bool

	// Quoted is true when any part of the field was double quoted or backslash escaped.
	Quoted bool
}

// ArrayDimension is one dimension of an explicit array bounds decoration such as [0:2]={...}.
type ArrayDimension struct {
	Length     int32
	LowerBound int32
}

// Cursor reads the fields of a composite literal such as (a,"b c",) or an array literal such as {1,NULL,"x"} one at a
// time. A Cursor owns only the text it was created with: fields that are themselves composites or arrays are
// returned whole and must be read with a new Cursor.
//
// Cursor follows the usual scanner pattern: call Next until it returns false, read each token with Field, then
// check Err.
type Cursor struct {
	src   string
	rp    int
	open  []byte // closing delimiters of the nested literals open in the current field
	array bool
	close byte

	dimensions []ArrayDimension

	field Field
	done  bool
	err   error
}

// NewCompositeCursor returns a Cursor over a composite literal. src must include the enclosing parentheses.
func NewCompositeCursor(src string) *Cursor {
	c := &Cursor{}
	c.Reset(src, false)
	return c
}

// NewArrayCursor returns a Cursor over a one level array literal. src must include the enclosing braces and may be
// preceded by explicit dimension bounds.
func NewArrayCursor(src string) *Cursor {
	c := &Cursor{}
	c.Reset(src, true)
	return c
}

// Reset prepares c to read a new literal.
func (c *Cursor) Reset(src string, array bool) {
	*c = Cursor{src: src, array: array}

	if array {
		c.close = '}'
		c.skipSpace()
		if c.rp < len(c.src) && c.src[c.rp] == '[' {
			if !c.readDimensions() {
				return
			}
		}
		if !c.expect('{') {
			return
		}
		c.skipSpace()
		if c.rp < len(c.src) && c.src[c.rp] == '}' {
			c.rp++
			c.done = true
			c.checkTrailing()
		}
		return
	}

	c.close = ')'
	c.skipSpace()
	c.expect('(')
}

// Next advances the cursor to the next field. It returns false after the last field is read or an error occurs.
// After Next returns false, the Err method can be called to check if any errors occurred.
func (c *Cursor) Next() bool {
	if c.err != nil || c.done {
		return false
	}

	var buf []byte
	quoted := false
	inQuotes := false
	keep := 0
	c.open = c.open[:0]

	if c.array {
		c.skipSpace()
	}

	for {
		if c.rp >= len(c.src) {
			c.fail(ErrTruncatedLiteral, c.rp)
			return false
		}

		ch := c.src[c.rp]

		if inQuotes {
			switch ch {
			case '\\':
				if c.rp+1 >= len(c.src) {
					c.fail(ErrTruncatedLiteral, c.rp)
					return false
				}
				if len(c.open) == 0 {
					buf = append(buf, c.src[c.rp+1])
				} else {
					buf = append(buf, ch, c.src[c.rp+1])
				}
				c.rp += 2
			case '"':
				if !c.array && c.rp+1 < len(c.src) && c.src[c.rp+1] == '"' {
					if len(c.open) == 0 {
						buf = append(buf, '"')
					} else {
						buf = append(buf, '"', '"')
					}
					c.rp += 2
				} else {
					inQuotes = false
					if len(c.open) > 0 {
						buf = append(buf, ch)
					}
					c.rp++
				}
			default:
				buf = append(buf, ch)
				c.rp++
			}
			if len(c.open) == 0 {
				keep = len(buf)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
			if len(c.open) == 0 {
				quoted = true
			} else {
				buf = append(buf, ch)
			}
			c.rp++
		case '\\':
			if c.rp+1 >= len(c.src) {
				c.fail(ErrTruncatedLiteral, c.rp)
				return false
			}
			if len(c.open) == 0 {
				buf = append(buf, c.src[c.rp+1])
				quoted = true
				keep = len(buf)
			} else {
				buf = append(buf, ch, c.src[c.rp+1])
			}
			c.rp += 2
		case '(':
			c.open = append(c.open, ')')
			buf = append(buf, ch)
			c.rp++
		case '{':
			c.open = append(c.open, '}')
			buf = append(buf, ch)
			c.rp++
		case ')', '}':
			if n := len(c.open); n > 0 {
				if c.open[n-1] != ch {
					c.fail(ErrUnbalancedLiteral, c.rp)
					return false
				}
				c.open = c.open[:n-1]
				buf = append(buf, ch)
				c.rp++
				continue
			}
			if ch != c.close {
				c.fail(ErrUnbalancedLiteral, c.rp)
				return false
			}
			c.rp++
			c.done = true
			c.setField(buf, quoted, keep)
			c.checkTrailing()
			return c.err == nil
		case ',':
			if len(c.open) > 0 {
				buf = append(buf, ch)
				c.rp++
				continue
			}
			c.rp++
			c.setField(buf, quoted, keep)
			return true
		default:
			buf = append(buf, ch)
			c.rp++
		}
	}
}

// Field returns the field most recently read by Next.
func (c *Cursor) Field() Field {
	return c.field
}

// AtEnd returns true when the closing delimiter of the literal has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.done
}

// Offset returns the current read position in the literal text.
func (c *Cursor) Offset() int {
	return c.rp
}

// Dimensions returns the explicit dimension bounds that preceded an array literal, or nil if there were none.
func (c *Cursor) Dimensions() []ArrayDimension {
	return c.dimensions
}

// Err returns any error encountered by the cursor.
func (c *Cursor) Err() error {
	return c.err
}

func (c *Cursor) setField(buf []byte, quoted bool, keep int) {
	if c.array {
		end := len(buf)
		for end > keep && isSpace(buf[end-1]) {
			end--
		}
		buf = buf[:end]

		text := string(buf)
		if !quoted && strings.EqualFold(text, "NULL") {
			c.field = Field{Null: true}
			return
		}
		c.field = Field{Text: text, Quoted: quoted}
		return
	}

	if len(buf) == 0 && !quoted {
		c.field = Field{Null: true}
		return
	}
	c.field = Field{Text: string(buf), Quoted: quoted}
}

func (c *Cursor) checkTrailing() {
	c.skipSpace()
	if c.rp == len(c.src) {
		return
	}

	switch c.src[c.rp] {
	case ')', '}':
		c.fail(ErrUnbalancedLiteral, c.rp)
	default:
		c.fail(ErrMalformedLiteral, c.rp)
	}
}

func (c *Cursor) expect(ch byte) bool {
	if c.rp >= len(c.src) {
		c.fail(ErrMalformedLiteral, c.rp)
		return false
	}
	if c.src[c.rp] != ch {
		c.fail(ErrMalformedLiteral, c.rp)
		return false
	}
	c.rp++
	return true
}

// readDimensions consumes an explicit bounds decoration such as [1:3][0:1]=.
func (c *Cursor) readDimensions() bool {
	for {
		if c.rp >= len(c.src) {
			c.fail(ErrTruncatedLiteral, c.rp)
			return false
		}

		switch c.src[c.rp] {
		case '=':
			c.rp++
			c.skipSpace()
			return true
		case '[':
			c.rp++
		default:
			c.fail(ErrMalformedLiteral, c.rp)
			return false
		}

		lower, ok := c.readInt32()
		if !ok || !c.expect(':') {
			return false
		}
		upper, ok := c.readInt32()
		if !ok || !c.expect(']') {
			return false
		}
		if upper < lower-1 {
			c.fail(ErrMalformedLiteral, c.rp)
			return false
		}
		c.dimensions = append(c.dimensions, ArrayDimension{LowerBound: lower, Length: upper - lower + 1})
	}
}

func (c *Cursor) readInt32() (int32, bool) {
	start := c.rp
	if c.rp < len(c.src) && (c.src[c.rp] == '-' || c.src[c.rp] == '+') {
		c.rp++
	}
	for c.rp < len(c.src) && '0' <= c.src[c.rp] && c.src[c.rp] <= '9' {
		c.rp++
	}

	n, err := strconv.ParseInt(c.src[start:c.rp], 10, 32)
	if err != nil {
		c.fail(ErrMalformedLiteral, start)
		return 0, false
	}
	return int32(n), true
}

func (c *Cursor) skipSpace() {
	for c.rp < len(c.src) && isSpace(c.src[c.rp]) {
		c.rp++
	}
}

func (c *Cursor) fail(err error, offset int) {
	c.err = &LiteralError{Err: err, Offset: offset, Literal: c.src}
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
