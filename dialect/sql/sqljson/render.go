package sqljson

import (
	"strconv"

	"github.com/syssam/jsonvalue"
	"github.com/syssam/jsonvalue/dialect/sql"
	"github.com/syssam/jsonvalue/dialect/sql/sqltype"
)

// plan is the outcome of validating a call against a profile. Renderers
// only emit text; every decision is taken while building the plan.
type plan struct {
	profile *Profile
	args    *Arguments
	walker  Walker
	// path is nil when the path is a runtime value.
	path Path
	// Resolved behavior kinds.
	onError, onEmpty BehaviorKind
	castDocument     bool
}

// renderer emits the SQL of a plan.
type renderer func(*sql.Builder, *plan) error

// renderers is the closed set of renderer variants.
var renderers = map[Navigation]renderer{
	ArrayOfKeysEmulation: renderKeys,
	NativeOperator:       renderOperator,
	NativeFunction:       renderFunction,
}

// ValueOf appends the json_value call described by args to b, using the
// profile of the builder dialect. A nil walker means DefaultWalker.
func ValueOf(b *sql.Builder, args *Arguments, w Walker) error {
	p, ok := LookupProfile(b.Dialect())
	if !ok {
		return jsonvalue.NewUnsupportedDialectError(b.Dialect())
	}
	return Render(b, args, p, w)
}

// Render appends the json_value call described by args to b, following
// the capabilities of p. Literals and identifiers are quoted with the
// rules of the builder dialect.
//
// The call is validated before anything is written. On error b is left
// exactly as it was.
func Render(b *sql.Builder, args *Arguments, p *Profile, w Walker) error {
	if w == nil {
		w = DefaultWalker{}
	}
	pl, err := newPlan(args, p, w)
	if err != nil {
		return err
	}
	r, ok := renderers[p.Navigation]
	if !ok {
		return jsonvalue.NewUnsupportedDialectError(p.Dialect)
	}
	f := b.Fork()
	if err := r(f, pl); err != nil {
		return err
	}
	b.Join(f)
	return nil
}

func newPlan(args *Arguments, p *Profile, w Walker) (*plan, error) {
	if p == nil {
		return nil, jsonvalue.NewInvalidArgumentError("profile", "missing")
	}
	if err := args.Validate(); err != nil {
		return nil, err
	}
	onError, onEmpty := p.resolve(kindOf(args.OnError), kindOf(args.OnEmpty))
	if !p.Supports(onError, onEmpty) {
		return nil, jsonvalue.NewUnsupportedBehaviorError(p.Dialect, onError.String(), onEmpty.String())
	}
	pl := &plan{
		profile:      p,
		args:         args,
		walker:       w,
		onError:      onError,
		onEmpty:      onEmpty,
		castDocument: p.CastParameterDocument && isParameter(args.Document) && !args.JSONTyped,
	}
	lit, ok := w.LiteralValue(args.Path)
	switch {
	case ok:
		path, err := ParsePath(lit)
		if err != nil {
			return nil, err
		}
		pl.path = path
	case p.LiteralPath:
		return nil, jsonvalue.NewNonLiteralPathError(p.Dialect, describe(args.Path))
	}
	return pl, nil
}

// strict reports whether the plan needs the strict path mode.
func (pl *plan) strict() bool {
	return pl.profile.StrictMode && pl.onError == BehaviorError && pl.onEmpty == BehaviorError
}

// outerCast reports whether the result is wrapped in a cast to the
// returning type.
func (pl *plan) outerCast() bool {
	return pl.args.Returning != nil && !pl.profile.ReturningClause
}

// guarded reports whether the call is wrapped in a document check.
func (pl *plan) guarded() bool {
	return pl.profile.DocumentCheck != "" && pl.onError == BehaviorNull
}

func (pl *plan) openCast(b *sql.Builder) {
	switch {
	case !pl.outerCast():
	case pl.profile.TryCast != "" && pl.onError == BehaviorNull:
		b.WriteString(pl.profile.TryCast).WriteByte('(')
	default:
		b.WriteString("cast(")
	}
}

func (pl *plan) closeCast(b *sql.Builder) error {
	if !pl.outerCast() {
		return nil
	}
	b.WriteString(" as ")
	if err := pl.walkType(b, pl.args.Returning); err != nil {
		return err
	}
	b.WriteByte(')')
	return nil
}

func (pl *plan) walkType(b *sql.Builder, t *sqltype.Spec) error {
	return pl.walker.Walk(b, t)
}

// document writes the document expression, cast when the plan requires it.
// Operator styles wrap it in parentheses to bind the operator correctly.
func (pl *plan) document(b *sql.Builder, parens bool) error {
	switch {
	case pl.castDocument:
		b.WriteString("cast(")
	case parens:
		b.WriteByte('(')
	}
	if err := pl.walker.Walk(b, pl.args.Document); err != nil {
		return err
	}
	switch {
	case pl.castDocument:
		b.WriteString(" as ").WriteString(pl.profile.DocumentType).WriteByte(')')
	case parens:
		b.WriteByte(')')
	}
	return nil
}

// renderKeys renders (doc)#>>array['a','b','0'].
func renderKeys(b *sql.Builder, pl *plan) error {
	pl.openCast(b)
	if err := pl.document(b, true); err != nil {
		return err
	}
	b.WriteString("#>>array")
	sep := byte('[')
	for _, e := range pl.path {
		b.WriteByte(sep)
		switch e := e.(type) {
		case Attribute:
			b.Literal(e.Name)
		case IndexAccess:
			// Array indices are text keys in the key array.
			b.WriteByte('\'').WriteString(strconv.Itoa(e.Index)).WriteByte('\'')
		}
		sep = ','
	}
	b.WriteByte(']')
	return pl.closeCast(b)
}

// renderOperator renders (doc)->'a'->'b'->>0.
func renderOperator(b *sql.Builder, pl *plan) error {
	pl.openCast(b)
	if err := pl.document(b, true); err != nil {
		return err
	}
	for i, e := range pl.path {
		if i == len(pl.path)-1 {
			b.WriteString("->>")
		} else {
			b.WriteString("->")
		}
		switch e := e.(type) {
		case Attribute:
			// Labels that need quoting are passed as a one step path.
			if isIdent(e.Name) {
				b.Literal(e.Name)
			} else {
				b.Literal(Path{e}.String())
			}
		case IndexAccess:
			b.WriteString(strconv.Itoa(e.Index))
		}
	}
	return pl.closeCast(b)
}

// renderFunction renders json_value(doc, 'path' returning t ... on empty ... on error),
// guarded as "case when check(doc) = 1 then json_value(...) end" when the
// profile needs it.
func renderFunction(b *sql.Builder, pl *plan) error {
	pl.openCast(b)
	if pl.guarded() {
		b.WriteString("case when ").WriteString(pl.profile.DocumentCheck).WriteByte('(')
		if err := pl.document(b, false); err != nil {
			return err
		}
		b.WriteString(") = 1 then ")
	}
	b.WriteString("json_value(")
	if err := pl.document(b, false); err != nil {
		return err
	}
	b.WriteString(", ")
	if err := pl.pathArg(b); err != nil {
		return err
	}
	if pl.args.Returning != nil && pl.profile.ReturningClause {
		b.WriteString(" returning ")
		if err := pl.walkType(b, pl.args.Returning); err != nil {
			return err
		}
	}
	if pl.profile.NativeEmptyClause {
		if err := pl.clause(b, pl.args.OnEmpty, "empty"); err != nil {
			return err
		}
	}
	if pl.profile.NativeErrorClause {
		if err := pl.clause(b, pl.args.OnError, "error"); err != nil {
			return err
		}
	}
	b.WriteByte(')')
	if pl.guarded() {
		b.WriteString(" end")
	}
	return pl.closeCast(b)
}

// pathArg writes the path argument of a native function.
func (pl *plan) pathArg(b *sql.Builder) error {
	if pl.path != nil {
		s := pl.path.String()
		if pl.strict() {
			s = "strict " + s
		}
		b.Literal(s)
		return nil
	}
	switch {
	case pl.strict():
		b.WriteString("concat(").Literal("strict ").WriteString(", ")
		if err := pl.walker.Walk(b, pl.args.Path); err != nil {
			return err
		}
		b.WriteByte(')')
	case pl.profile.PathType != "":
		b.WriteString("cast(")
		if err := pl.walker.Walk(b, pl.args.Path); err != nil {
			return err
		}
		b.WriteString(" as ").WriteString(pl.profile.PathType).WriteByte(')')
	default:
		return pl.walker.Walk(b, pl.args.Path)
	}
	return nil
}

// clause writes " <behavior> on <event>" for a behavior given by the caller.
func (pl *plan) clause(b *sql.Builder, bh *Behavior, event string) error {
	if bh == nil {
		return nil
	}
	b.WriteByte(' ')
	switch bh.Kind {
	case BehaviorDefault:
		b.WriteString("default ")
		if err := pl.walker.Walk(b, bh.Value); err != nil {
			return err
		}
	default:
		b.WriteString(bh.Kind.String())
	}
	b.WriteString(" on ").WriteString(event)
	return nil
}
