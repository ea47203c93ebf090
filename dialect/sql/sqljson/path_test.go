package sqljson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/jsonvalue"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path      string
		want      Path
		canonical string
	}{
		{"$.theString", Path{Attribute{"theString"}}, "$.theString"},
		{"$.a.b[2]", Path{Attribute{"a"}, Attribute{"b"}, IndexAccess{2}}, "$.a.b[2]"},
		{"$[0][1]", Path{IndexAccess{0}, IndexAccess{1}}, "$[0][1]"},
		{"$['b c']", Path{Attribute{"b c"}}, `$."b c"`},
		{`$["a\"b"]`, Path{Attribute{`a"b`}}, `$."a\"b"`},
		{`$['it\'s']`, Path{Attribute{"it's"}}, `$."it's"`},
		{`$['a\\b']`, Path{Attribute{`a\b`}}, `$."a\\b"`},
		{"$['0']", Path{Attribute{"0"}}, `$."0"`},
		{"$.$a", Path{Attribute{"$a"}}, `$."$a"`},
		{"$['$a'].b", Path{Attribute{"$a"}, Attribute{"b"}}, `$."$a".b`},
		{"$.a_1", Path{Attribute{"a_1"}}, "$.a_1"},
		{"$.größe", Path{Attribute{"größe"}}, "$.größe"},
		{"$[007]", Path{IndexAccess{7}}, "$[7]"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := ParsePath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
			assert.Equal(t, tt.canonical, p.String())
			// The canonical form parses back to the same path.
			again, err := ParsePath(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, again)
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	tests := []struct {
		path   string
		pos    int
		reason string
	}{
		{"", 0, "path must start with $"},
		{"a.b", 0, "path must start with $"},
		{".a", 0, "path must start with $"},
		{"$", 1, "path selects the whole document, at least one step is required"},
		{"$.", 2, "empty identifier"},
		{"$..a", 2, "empty identifier"},
		{"$. a", 2, "unexpected whitespace"},
		{"$.a b", 3, "unexpected whitespace"},
		{"$.1a", 2, "identifier must not start with a digit"},
		{"$.a]", 3, "unbalanced bracket"},
		{"$.a[", 4, "unbalanced bracket"},
		{"$[1", 3, "unbalanced bracket, missing ] for [ at position 1"},
		{"$.a[x]", 4, "non-numeric index"},
		{"$[1x]", 3, "non-numeric index"},
		{"$[-1]", 2, "index must be a non-negative integer"},
		{"$[]", 2, "empty brackets"},
		{"$[ 1]", 2, "unexpected whitespace"},
		{"$[99999999999999999999]", 2, "index out of range"},
		{"$['a'x]", 5, "expected ] after quoted name"},
		{"$['']", 3, "empty identifier"},
		{"$['abc", 6, "unterminated quoted name"},
		{`$['a\n']`, 4, `invalid escape sequence "\\n"`},
		{`$['a\`, 4, "unterminated escape sequence"},
		{"$#", 1, "unexpected character '#'"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := ParsePath(tt.path)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, jsonvalue.IsPathSyntax(err))
			var perr *jsonvalue.PathSyntaxError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.path, perr.Path)
			assert.Equal(t, tt.pos, perr.Pos)
			assert.Equal(t, tt.reason, perr.Reason)
		})
	}
}

func TestMustParsePath(t *testing.T) {
	assert.Equal(t, Path{Attribute{"a"}}, MustParsePath("$.a"))
	assert.Panics(t, func() { MustParsePath("$") })
}

func TestPathElementString(t *testing.T) {
	assert.Equal(t, ".a", Attribute{"a"}.String())
	assert.Equal(t, `."a.b"`, Attribute{"a.b"}.String())
	assert.Equal(t, `."1a"`, Attribute{"1a"}.String())
	assert.Equal(t, "[3]", IndexAccess{3}.String())
}

func TestParsePathQuotedMember(t *testing.T) {
	p, err := ParsePath(`$."b c".'d'`)
	require.NoError(t, err)
	assert.Equal(t, Path{Attribute{"b c"}, Attribute{"d"}}, p)

	_, err = ParsePath(`$."b`)
	require.Error(t, err)
	var perr *jsonvalue.PathSyntaxError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 4, perr.Pos)
	assert.Equal(t, "unterminated quoted name", perr.Reason)
}
