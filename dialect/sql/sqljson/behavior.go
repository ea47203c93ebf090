package sqljson

import "fmt"

// BehaviorKind is the action taken when extraction fails (on error)
// or finds nothing (on empty).
type BehaviorKind uint8

// Behavior kinds.
const (
	BehaviorUnspecified BehaviorKind = iota
	BehaviorNull
	BehaviorError
	BehaviorDefault
)

// String returns the SQL keyword of the kind.
func (k BehaviorKind) String() string {
	switch k {
	case BehaviorUnspecified:
		return "unspecified"
	case BehaviorNull:
		return "null"
	case BehaviorError:
		return "error"
	case BehaviorDefault:
		return "default"
	default:
		return fmt.Sprintf("BehaviorKind(%d)", k)
	}
}

// ParseBehaviorKind parses "null", "error" or "default".
func ParseBehaviorKind(s string) (BehaviorKind, bool) {
	switch s {
	case "null", "NULL":
		return BehaviorNull, true
	case "error", "ERROR":
		return BehaviorError, true
	case "default", "DEFAULT":
		return BehaviorDefault, true
	}
	return BehaviorUnspecified, false
}

// Behavior is an on error or on empty clause. Value is set only for
// BehaviorDefault and holds the substituted expression, usually a Literal.
type Behavior struct {
	Kind  BehaviorKind
	Value Expr
}

// NullOn returns the "null on ..." behavior.
func NullOn() *Behavior {
	return &Behavior{Kind: BehaviorNull}
}

// ErrorOn returns the "error on ..." behavior.
func ErrorOn() *Behavior {
	return &Behavior{Kind: BehaviorError}
}

// DefaultOn returns the "default v on ..." behavior.
func DefaultOn(v Expr) *Behavior {
	return &Behavior{Kind: BehaviorDefault, Value: v}
}

// kindOf returns the kind of b, treating nil as unspecified.
func kindOf(b *Behavior) BehaviorKind {
	if b == nil {
		return BehaviorUnspecified
	}
	return b.Kind
}
