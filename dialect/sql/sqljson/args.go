package sqljson

import (
	"fmt"

	"github.com/syssam/jsonvalue"
	"github.com/syssam/jsonvalue/dialect/sql/sqltype"
)

// Arguments holds the type-checked inputs of a json_value call. An
// Arguments value is owned by the render call it is passed to.
type Arguments struct {
	// Document is the json document expression.
	Document Expr
	// Path is the json path expression, usually a Literal string.
	Path Expr
	// Returning is the optional cast target of the extracted value.
	Returning *sqltype.Spec
	// OnError and OnEmpty are the optional error and empty clauses.
	// Nil means the dialect default.
	OnError *Behavior
	OnEmpty *Behavior
	// JSONTyped reports that the document expression is already typed
	// as json, so a parameter document needs no cast.
	JSONTyped bool
}

// Validate checks the arguments independently of any dialect.
func (a *Arguments) Validate() error {
	switch {
	case a == nil:
		return jsonvalue.NewInvalidArgumentError("arguments", "missing")
	case a.Document == nil:
		return jsonvalue.NewInvalidArgumentError("document", "missing")
	case a.Path == nil:
		return jsonvalue.NewInvalidArgumentError("path", "missing")
	}
	if err := a.validateBehavior("on error", a.OnError); err != nil {
		return err
	}
	return a.validateBehavior("on empty", a.OnEmpty)
}

func (a *Arguments) validateBehavior(name string, b *Behavior) error {
	if b == nil {
		return nil
	}
	switch b.Kind {
	case BehaviorNull, BehaviorError:
		if b.Value != nil {
			return jsonvalue.NewInvalidArgumentError(name, fmt.Sprintf("%s behavior takes no value", b.Kind))
		}
	case BehaviorDefault:
		if b.Value == nil {
			return jsonvalue.NewInvalidArgumentError(name, "default behavior requires a value")
		}
		// Only literals can be checked here; other expressions are
		// typed by the database.
		if l, ok := b.Value.(Literal); ok && a.Returning != nil && !a.Returning.Accepts(l.V) {
			return jsonvalue.NewInvalidArgumentError(name, fmt.Sprintf("default value %v is not compatible with returning type %s", l.V, a.Returning))
		}
	default:
		return jsonvalue.NewInvalidArgumentError(name, fmt.Sprintf("invalid behavior %s", b.Kind))
	}
	return nil
}
