package sqljson

import (
	"fmt"
	"strconv"

	"github.com/syssam/jsonvalue"
	"github.com/syssam/jsonvalue/dialect"
	"github.com/syssam/jsonvalue/dialect/sql"
	"github.com/syssam/jsonvalue/dialect/sql/sqltype"
)

// Expr is an opaque SQL expression. Renderers never inspect expressions;
// they hand them to a Walker, and at most ask whether an expression is a
// bound parameter (see Parameter).
type Expr any

// Parameter is implemented by expressions bound at execution time.
type Parameter interface {
	Parameter() bool
}

// Walker renders sub-expressions on behalf of a renderer. It is the bridge
// to the enclosing query compiler.
type Walker interface {
	// Walk appends the SQL of x to b.
	Walk(b *sql.Builder, x Expr) error
	// LiteralValue returns the compile-time string value of x, if it has one.
	LiteralValue(x Expr) (string, bool)
}

// Column is a column reference, possibly qualified ("t.json").
type Column string

// Param is a value bound as a query argument.
type Param struct {
	V any
}

// Parameter implements the Parameter interface.
func (Param) Parameter() bool { return true }

// String describes the parameter without exposing its value.
func (Param) String() string { return "parameter" }

// Literal is a constant inlined into the statement.
type Literal struct {
	V any
}

// Raw is SQL text written as is.
type Raw string

// DefaultWalker walks the expressions defined in this package and
// *sqltype.Spec return types.
type DefaultWalker struct{}

// Walk implements the Walker interface.
func (DefaultWalker) Walk(b *sql.Builder, x Expr) error {
	switch x := x.(type) {
	case Column:
		b.Ident(string(x))
	case Param:
		b.Arg(x.V)
	case Literal:
		return writeLiteral(b, x.V)
	case Raw:
		b.WriteString(string(x))
	case *sqltype.Spec:
		t, err := x.Format(b.Dialect())
		if err != nil {
			return err
		}
		b.WriteString(t)
	default:
		return jsonvalue.NewInvalidArgumentError("expression", fmt.Sprintf("unsupported expression type %T", x))
	}
	return nil
}

// LiteralValue implements the Walker interface.
func (DefaultWalker) LiteralValue(x Expr) (string, bool) {
	if l, ok := x.(Literal); ok {
		s, ok := l.V.(string)
		return s, ok
	}
	return "", false
}

func writeLiteral(b *sql.Builder, v any) error {
	switch v := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.Literal(v)
	case bool:
		switch {
		case b.Dialect() == dialect.SQLServer && v:
			b.WriteByte('1')
		case b.Dialect() == dialect.SQLServer:
			b.WriteByte('0')
		default:
			b.WriteString(strconv.FormatBool(v))
		}
	case int:
		b.WriteString(strconv.Itoa(v))
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(v), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(v, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case float32:
		b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	default:
		return jsonvalue.NewInvalidArgumentError("literal", fmt.Sprintf("unsupported literal type %T", v))
	}
	return nil
}

// isParameter reports whether x is a bound parameter.
func isParameter(x Expr) bool {
	p, ok := x.(Parameter)
	return ok && p.Parameter()
}

// describe returns a short description of x for error messages.
func describe(x Expr) string {
	switch x := x.(type) {
	case fmt.Stringer:
		return x.String()
	case Column:
		return "column " + string(x)
	case Raw:
		return "expression " + string(x)
	default:
		return fmt.Sprintf("%T", x)
	}
}
