// Package sql provides the SQL text builder and the database/sql driver
// wrapper used by the json_value compiler.
//
// # Builder
//
// Builder is the output buffer every renderer appends to. It knows the
// quoting and placeholder rules of its dialect:
//
//	b := sql.Dialect(dialect.CockroachDB)
//	b.WriteString("SELECT ").Ident("t.json")   // SELECT "t"."json"
//	b.Literal("it's")                           // 'it''s'
//	b.Arg(`{"a":1}`)                            // $1
//
// Literal quoting for postgres and cockroachdb is delegated to lib/pq.
//
// # Fork and Join
//
// A renderer that may fail part way writes into a fork of the statement
// builder and joins it back only on success, so a failed render leaves the
// statement untouched:
//
//	f := b.Fork()
//	if err := render(f); err != nil {
//	    return err // b is unchanged
//	}
//	b.Join(f)
//
// # Driver
//
// Open resolves dialect aliases and opens the database/sql driver registered
// for the dialect. Drivers are registered by importing them, e.g.
// github.com/lib/pq, github.com/go-sql-driver/mysql or modernc.org/sqlite.
package sql
