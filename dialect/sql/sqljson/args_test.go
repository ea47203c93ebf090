package sqljson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/jsonvalue"
	"github.com/syssam/jsonvalue/dialect"
	"github.com/syssam/jsonvalue/dialect/sql"
	"github.com/syssam/jsonvalue/dialect/sql/sqltype"
)

func TestArgumentsValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    *Arguments
		wantErr string
	}{
		{"valid", Value("json", "$.a"), ""},
		{"nil", nil, "jsonvalue: invalid argument arguments: missing"},
		{"no document", &Arguments{Path: Literal{V: "$.a"}}, "jsonvalue: invalid argument document: missing"},
		{"no path", &Arguments{Document: Column("json")}, "jsonvalue: invalid argument path: missing"},
		{
			"null with value",
			Value("json", "$.a", OnError(&Behavior{Kind: BehaviorNull, Value: Literal{V: 1}})),
			"jsonvalue: invalid argument on error: null behavior takes no value",
		},
		{
			"default without value",
			Value("json", "$.a", OnEmpty(&Behavior{Kind: BehaviorDefault})),
			"jsonvalue: invalid argument on empty: default behavior requires a value",
		},
		{
			"default incompatible",
			Value("json", "$.a", Returning(sqltype.Of(sqltype.Integer)), OnEmpty(DefaultOn(Literal{V: "x"}))),
			"jsonvalue: invalid argument on empty: default value x is not compatible with returning type integer",
		},
		{
			"default expression",
			Value("json", "$.a", Returning(sqltype.Of(sqltype.Integer)), OnEmpty(DefaultOn(Column("fallback")))),
			"",
		},
		{
			"unspecified kind",
			Value("json", "$.a", OnError(&Behavior{})),
			"jsonvalue: invalid argument on error: invalid behavior unspecified",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.args.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
			assert.True(t, jsonvalue.IsInvalidArgument(err))
		})
	}
}

func TestParseBehaviorKind(t *testing.T) {
	for s, want := range map[string]BehaviorKind{"null": BehaviorNull, "ERROR": BehaviorError, "default": BehaviorDefault} {
		k, ok := ParseBehaviorKind(s)
		assert.True(t, ok, s)
		assert.Equal(t, want, k)
	}
	_, ok := ParseBehaviorKind("ignore")
	assert.False(t, ok)
	assert.Equal(t, "BehaviorKind(9)", BehaviorKind(9).String())
}

func TestDefaultWalker(t *testing.T) {
	tests := []struct {
		dialect string
		expr    Expr
		want    string
	}{
		{dialect.Postgres, Column("t.json"), `"t"."json"`},
		{dialect.MySQL, Literal{V: "it's"}, `'it''s'`},
		{dialect.SQLServer, Literal{V: true}, "1"},
		{dialect.Postgres, Literal{V: false}, "false"},
		{dialect.SQLite, Literal{V: nil}, "null"},
		{dialect.SQLite, Literal{V: 1.5}, "1.5"},
		{dialect.SQLite, Literal{V: int64(-3)}, "-3"},
		{dialect.Postgres, Raw("now()"), "now()"},
		{dialect.Postgres, sqltype.DecimalOf(10, 2), "numeric(10,2)"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect+"/"+describe(tt.expr), func(t *testing.T) {
			b := sql.Dialect(tt.dialect)
			require.NoError(t, DefaultWalker{}.Walk(b, tt.expr))
			assert.Equal(t, tt.want, b.String())
		})
	}

	err := DefaultWalker{}.Walk(sql.Dialect(dialect.Postgres), Literal{V: []int{1}})
	assert.True(t, jsonvalue.IsInvalidArgument(err))

	s, ok := DefaultWalker{}.LiteralValue(Literal{V: "$.a"})
	assert.True(t, ok)
	assert.Equal(t, "$.a", s)
	_, ok = DefaultWalker{}.LiteralValue(Literal{V: 1})
	assert.False(t, ok)
	_, ok = DefaultWalker{}.LiteralValue(Param{V: "$.a"})
	assert.False(t, ok)
}
