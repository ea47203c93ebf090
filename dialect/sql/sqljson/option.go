package sqljson

import "github.com/syssam/jsonvalue/dialect/sql/sqltype"

// Option configures the Arguments built by Value.
type Option func(*Arguments)

// Value returns the arguments of a json_value call on a column with a
// literal path.
//
//	sqljson.Value("payload", "$.user.name", sqljson.Returning(sqltype.VarChar(64)))
func Value(column, path string, opts ...Option) *Arguments {
	a := &Arguments{Document: Column(column), Path: Literal{V: path}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Returning sets the cast target of the extracted value.
func Returning(t *sqltype.Spec) Option {
	return func(a *Arguments) {
		a.Returning = t
	}
}

// OnError sets the on error behavior.
func OnError(b *Behavior) Option {
	return func(a *Arguments) {
		a.OnError = b
	}
}

// OnEmpty sets the on empty behavior.
func OnEmpty(b *Behavior) Option {
	return func(a *Arguments) {
		a.OnEmpty = b
	}
}

// JSONTyped marks the document as already typed as json.
func JSONTyped() Option {
	return func(a *Arguments) {
		a.JSONTyped = true
	}
}
