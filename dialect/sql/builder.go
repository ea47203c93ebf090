package sql

import (
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/syssam/jsonvalue/dialect"
)

// Querier wraps the basic Query method that is implemented
// by the different builders in this file.
type Querier interface {
	// Query returns the query representation of the element
	// and its arguments (if any).
	Query() (string, []any)
}

// Builder is the base query builder for the sql dsl. It accumulates the
// SQL text of a statement together with its bound arguments.
//
// A Builder is owned by a single statement compilation and must not be
// shared between goroutines.
type Builder struct {
	sb      *strings.Builder // underlying builder.
	dialect string           // configured dialect.
	args    []any            // query parameters.
	total   int              // total number of parameters in query tree.
}

// Dialect creates a new Builder for the given dialect. Known aliases
// such as "crdb" or "postgresql" are resolved to their canonical name.
//
//	b := sql.Dialect(dialect.CockroachDB)
//	b.WriteString("SELECT ").Ident("t.json")
func Dialect(name string) *Builder {
	if d, ok := dialect.Normalize(name); ok {
		name = d
	}
	return &Builder{dialect: name}
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string {
	return b.dialect
}

// WriteString writes the given string as is.
func (b *Builder) WriteString(s string) *Builder {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
	b.sb.WriteString(s)
	return b
}

// WriteByte wraps the Buffer.WriteByte to make it chainable with other methods.
func (b *Builder) WriteByte(c byte) *Builder {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
	b.sb.WriteByte(c)
	return b
}

// Len returns the number of accumulated bytes.
func (b *Builder) Len() int {
	if b.sb == nil {
		return 0
	}
	return b.sb.Len()
}

// String returns the accumulated string.
func (b *Builder) String() string {
	if b.sb == nil {
		return ""
	}
	return b.sb.String()
}

// Args returns the accumulated arguments.
func (b *Builder) Args() []any {
	return b.args
}

// Query implements the Querier interface.
func (b *Builder) Query() (string, []any) {
	return b.String(), b.args
}

// Ident appends the given string as an identifier. Dotted names are
// quoted part by part, so "t.json" becomes "t"."json" on postgres.
func (b *Builder) Ident(s string) *Builder {
	switch {
	case len(s) == 0:
	case s == "*":
		b.WriteString(s)
	case strings.Contains(s, "."):
		for i, part := range strings.Split(s, ".") {
			if i > 0 {
				b.WriteByte('.')
			}
			b.quoteIdent(part)
		}
	default:
		b.quoteIdent(s)
	}
	return b
}

func (b *Builder) quoteIdent(s string) {
	switch b.dialect {
	case dialect.MySQL, dialect.MariaDB:
		b.WriteByte('`').WriteString(strings.ReplaceAll(s, "`", "``")).WriteByte('`')
	case dialect.SQLServer:
		b.WriteByte('[').WriteString(strings.ReplaceAll(s, "]", "]]")).WriteByte(']')
	default:
		b.WriteString(pq.QuoteIdentifier(s))
	}
}

// Literal appends s as a quoted string literal using the quoting
// rules of the builder dialect.
func (b *Builder) Literal(s string) *Builder {
	switch b.dialect {
	case dialect.Postgres, dialect.CockroachDB:
		// QuoteLiteral prefixes escape-string literals with a space.
		b.WriteString(strings.TrimPrefix(pq.QuoteLiteral(s), " "))
	case dialect.MySQL, dialect.MariaDB:
		b.WriteByte('\'').WriteString(escapeStringValue(s)).WriteByte('\'')
	default:
		b.WriteByte('\'').WriteString(strings.ReplaceAll(s, "'", "''")).WriteByte('\'')
	}
	return b
}

// Arg appends an input argument to the builder and writes the
// placeholder the dialect expects for it.
func (b *Builder) Arg(a any) *Builder {
	b.total++
	b.args = append(b.args, a)
	switch b.dialect {
	case dialect.Postgres, dialect.CockroachDB:
		b.WriteByte('$').WriteString(strconv.Itoa(b.total))
	case dialect.SQLServer:
		b.WriteString("@p").WriteString(strconv.Itoa(b.total))
	default:
		b.WriteByte('?')
	}
	return b
}

// Fork returns an empty builder of the same dialect whose placeholders
// continue the numbering of b. Text written to the fork reaches b only
// through Join.
func (b *Builder) Fork() *Builder {
	return &Builder{dialect: b.dialect, total: b.total}
}

// Join appends the text and arguments of a builder returned by Fork.
func (b *Builder) Join(f *Builder) *Builder {
	b.WriteString(f.String())
	b.args = append(b.args, f.args...)
	if f.total > b.total {
		b.total = f.total
	}
	return b
}
