// Package rowmap maps raw database row values to typed Go values.
/*
A Row supplies the raw value of each column by name. Raw values are whatever the database driver produced: usually
literal text as a string or []byte, but possibly an already decoded value such as an int64 or time.Time. Get and
GetNullable decode one column with a pgtext.Registry:

	id, err := rowmap.Get[int64](row, nil, "id")
	nickname, err := rowmap.GetNullable[string](row, nil, "nickname")

Getter wraps a Row and a Registry and offers a method per supported kind:

	g := rowmap.NewGetter(row, reg)
	name, err := g.String("name")
	deletedAt, err := g.TimestamptzNullable("deleted_at")

Columns of a composite type are read with Getter.Composite, which returns a pgtext.Reader over the field's literal.
Columns of an array type are read with GetArray.

The pgxrow package adapts rows returned by github.com/jackc/pgx/v5 to Row. Values and Map are Row implementations
for use with other drivers and in tests.
*/
package rowmap
