// Package sqljson compiles json_value calls into the SQL of a specific
// dialect.
//
// A call is described by Arguments: a document expression, a json path, an
// optional returning type and optional on error and on empty behaviors.
// Every supported dialect has a Profile listing what it can do natively.
// Render checks the call against the profile and either emits an
// equivalent expression or fails with one of the jsonvalue error kinds.
// It never emits SQL whose behavior differs from the request.
//
//	b := sql.Dialect(dialect.CockroachDB)
//	b.WriteString("SELECT ")
//	if err := sqljson.ValueOf(b, sqljson.Value("json", "$.theString"), nil); err != nil {
//		return err
//	}
//	// SELECT ("json")#>>array['theString']
//
// Paths use a small subset of the SQL/JSON path language: "$" followed by
// member steps (.name, ."quoted name", ['quoted name']) and array steps
// ([0]). Filters, wildcards and slices are not supported.
//
// Sub-expressions are written by a Walker, which lets an enclosing query
// compiler render its own expression types. DefaultWalker handles the
// Column, Param, Literal and Raw expressions of this package.
package sqljson
