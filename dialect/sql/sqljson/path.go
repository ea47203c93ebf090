package sqljson

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/syssam/jsonvalue"
)

// PathElement is a single step of a parsed json path. It is either an
// Attribute or an IndexAccess.
type PathElement interface {
	// String returns the step in canonical path syntax.
	String() string
	pathElement()
}

// Attribute selects an object member by name.
type Attribute struct {
	Name string
}

// IndexAccess selects an array element by position.
type IndexAccess struct {
	Index int
}

func (Attribute) pathElement()   {}
func (IndexAccess) pathElement() {}

// String returns ".name", or ."name" when the name is not a bare identifier.
func (a Attribute) String() string {
	if isIdent(a.Name) {
		return "." + a.Name
	}
	return "." + quoteName(a.Name)
}

// String returns "[index]".
func (i IndexAccess) String() string {
	return "[" + strconv.Itoa(i.Index) + "]"
}

// Path is a parsed json path. The root "$" is implicit, so a valid
// Path always holds at least one step.
type Path []PathElement

// String returns the canonical form of the path, e.g. $.a."b c"[2].
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, e := range p {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePath parses a json path of the form
//
//	path := "$" step+
//	step := "." identifier | "." quoted | "[" digits "]" | "[" quoted "]"
//
// where quoted is a single or double quoted name with backslash escapes.
// Whitespace is not allowed outside quoted names. Errors are reported as
// *jsonvalue.PathSyntaxError.
func ParsePath(s string) (Path, error) {
	p := &pathParser{src: s}
	return p.parse()
}

type pathParser struct {
	src string
	pos int
}

func (p *pathParser) syntaxError(pos int, reason string) error {
	return jsonvalue.NewPathSyntaxError(p.src, pos, reason)
}

func (p *pathParser) parse() (Path, error) {
	if !strings.HasPrefix(p.src, "$") {
		return nil, p.syntaxError(0, "path must start with $")
	}
	p.pos = 1
	if p.pos == len(p.src) {
		return nil, p.syntaxError(p.pos, "path selects the whole document, at least one step is required")
	}
	var path Path
	for p.pos < len(p.src) {
		var (
			e   PathElement
			err error
		)
		switch c := p.src[p.pos]; {
		case c == '.':
			e, err = p.member()
		case c == '[':
			e, err = p.bracket()
		case c == ']':
			err = p.syntaxError(p.pos, "unbalanced bracket")
		case isSpace(c):
			err = p.syntaxError(p.pos, "unexpected whitespace")
		default:
			err = p.syntaxError(p.pos, "unexpected character "+strconv.QuoteRune(p.peekRune()))
		}
		if err != nil {
			return nil, err
		}
		path = append(path, e)
	}
	return path, nil
}

// member parses ".identifier" and ."quoted name".
func (p *pathParser) member() (PathElement, error) {
	p.pos++ // '.'
	start := p.pos
	if start < len(p.src) && (p.src[start] == '"' || p.src[start] == '\'') {
		name, err := p.quoted(p.src[start])
		if err != nil {
			return nil, err
		}
		return Attribute{Name: name}, nil
	}
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isIdentRune(r) {
			break
		}
		p.pos += size
	}
	name := p.src[start:p.pos]
	switch {
	case name == "" && start < len(p.src) && isSpace(p.src[start]):
		return nil, p.syntaxError(start, "unexpected whitespace")
	case name == "":
		return nil, p.syntaxError(start, "empty identifier")
	case isDigit(name[0]):
		return nil, p.syntaxError(start, "identifier must not start with a digit")
	}
	return Attribute{Name: name}, nil
}

// bracket parses "[digits]" and "['name']".
func (p *pathParser) bracket() (PathElement, error) {
	open := p.pos
	p.pos++ // '['
	if p.pos == len(p.src) {
		return nil, p.syntaxError(p.pos, "unbalanced bracket")
	}
	var (
		e       PathElement
		numeric bool
	)
	switch c := p.src[p.pos]; {
	case isDigit(c):
		numeric = true
		start := p.pos
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
		n, err := strconv.Atoi(p.src[start:p.pos])
		if err != nil {
			return nil, p.syntaxError(start, "index out of range")
		}
		e = IndexAccess{Index: n}
	case c == '\'' || c == '"':
		name, err := p.quoted(c)
		if err != nil {
			return nil, err
		}
		e = Attribute{Name: name}
	case c == '-' || c == '+':
		return nil, p.syntaxError(p.pos, "index must be a non-negative integer")
	case c == ']':
		return nil, p.syntaxError(p.pos, "empty brackets")
	case isSpace(c):
		return nil, p.syntaxError(p.pos, "unexpected whitespace")
	default:
		return nil, p.syntaxError(p.pos, "non-numeric index")
	}
	switch {
	case p.pos == len(p.src):
		return nil, p.syntaxError(p.pos, "unbalanced bracket, missing ] for [ at position "+strconv.Itoa(open))
	case p.src[p.pos] == ']':
		p.pos++
		return e, nil
	case isSpace(p.src[p.pos]):
		return nil, p.syntaxError(p.pos, "unexpected whitespace")
	case numeric:
		return nil, p.syntaxError(p.pos, "non-numeric index")
	default:
		return nil, p.syntaxError(p.pos, "expected ] after quoted name")
	}
}

// quoted parses a quoted name starting at the opening quote q.
func (p *pathParser) quoted(q byte) (string, error) {
	start := p.pos
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == q:
			p.pos++
			if sb.Len() == 0 {
				return "", p.syntaxError(start+1, "empty identifier")
			}
			return sb.String(), nil
		case c == '\\':
			if p.pos+1 == len(p.src) {
				return "", p.syntaxError(p.pos, "unterminated escape sequence")
			}
			switch n := p.src[p.pos+1]; n {
			case '\\', '\'', '"':
				sb.WriteByte(n)
			default:
				return "", p.syntaxError(p.pos, "invalid escape sequence "+strconv.Quote(p.src[p.pos:p.pos+2]))
			}
			p.pos += 2
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", p.syntaxError(len(p.src), "unterminated quoted name")
}

func (p *pathParser) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isIdent reports whether name can be written as a bare member step.
// A leading $ would read as a path variable, so such names are quoted.
func isIdent(name string) bool {
	if name == "" || isDigit(name[0]) || name[0] == '$' {
		return false
	}
	for _, r := range name {
		if !isIdentRune(r) {
			return false
		}
	}
	return true
}

// quoteName double quotes a member name for canonical path syntax.
func quoteName(name string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(name); i++ {
		if c := name[i]; c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(name[i])
	}
	sb.WriteByte('"')
	return sb.String()
}
