// Package pgtext reads and writes the PostgreSQL text representation of composite and array values.
/*
PostgreSQL returns a value of a composite (row) type in text format as a parenthesized, comma separated list of fields
such as (1,"a b",) and an array as a brace delimited list such as {1,NULL,3}. The Cursor type walks either kind of
literal one field at a time, reporting for each field its unescaped text and whether it is SQL NULL.

Composite Support

Reader reads the fields of a composite literal in order with typed methods such as ReadInt32, ReadText, and
ReadTimestamptz. Every Read method returns a pointer that is nil for NULL. A nested composite is read with
ReadComposite which returns a Reader scoped to the nested literal.

Builder produces composite literals. Fields are appended in order and quoted only when needed. Application types can
implement CompositeValuer to append their own fields.

	b := pgtext.NewCompositeBuilder()
	b.AppendInt32(&id)
	b.AppendText(&name)
	b.AppendNull()
	s, err := b.Build() // (7,"Jane Doe",)

In a composite literal an empty unquoted field is NULL and "" is the empty string.

Array Support

ParseArray and ReadArray decode array literals into []*E. Within an array the unquoted keyword NULL in any letter
case is NULL and a quoted "NULL" is the text NULL. A multidimensional array is decoded as an array of arrays, and the
optional dimension decoration such as [0:2]= is accepted and exposed by Cursor.Dimensions.

Decoder Registry

Registry maps Go types to Decoders that convert raw driver values, usually literal text, into Go values. A Registry
resolves built-in decoders for bool, the integer and float types, decimal.Decimal, apd.Decimal, string, []byte,
time.Time, Time, TimeTZ, uuid.UUID, and []*E of each of them. Types registered with RegisterComposite and types whose
pointer implements sql.Scanner are resolved as well.

	type point struct{ X, Y float64 }

	pgtext.RegisterComposite(reg, func(r *pgtext.Reader) (point, error) {
		x, err := r.ReadFloat64()
		...
	})
*/
package pgtext
