package sqltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/jsonvalue"
	"github.com/syssam/jsonvalue/dialect"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		dialect string
		spec    *Spec
		want    string
	}{
		{dialect.CockroachDB, Of(Integer), "integer"},
		{dialect.CockroachDB, Of(BigInt), "bigint"},
		{dialect.Postgres, Of(Boolean), "boolean"},
		{dialect.Postgres, Of(JSON), "jsonb"},
		{dialect.Postgres, Of(String), "text"},
		{dialect.Postgres, DecimalOf(10, 2), "numeric(10,2)"},
		{dialect.Postgres, Of(UUID), "uuid"},
		{dialect.SQLite, Of(Integer), "integer"},
		{dialect.SQLite, Of(Boolean), "integer"},
		{dialect.SQLite, Of(Double), "real"},
		{dialect.SQLite, Of(JSON), "text"},
		{dialect.MySQL, Of(Integer), "signed"},
		{dialect.MySQL, VarChar(20), "char(20)"},
		{dialect.MySQL, Of(String), "char"},
		{dialect.MySQL, Of(Timestamp), "datetime"},
		{dialect.MySQL, DecimalOf(10, 2), "decimal(10,2)"},
		{dialect.MySQL, Of(JSON), "json"},
		{dialect.MariaDB, Of(JSON), "char"},
		{dialect.MariaDB, Of(Float), "double"},
		{dialect.SQLServer, Of(Boolean), "bit"},
		{dialect.SQLServer, VarChar(50), "nvarchar(50)"},
		{dialect.SQLServer, Of(String), "nvarchar(max)"},
		{dialect.SQLServer, DecimalOf(12, 4), "decimal(12,4)"},
		{dialect.SQLServer, Of(UUID), "uniqueidentifier"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.spec.String(), func(t *testing.T) {
			got, err := tt.spec.Format(tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatErrors(t *testing.T) {
	_, err := Of(Integer).Format("oracle")
	assert.True(t, jsonvalue.IsUnsupportedDialect(err))

	_, err = Of(Invalid).Format(dialect.Postgres)
	assert.True(t, jsonvalue.IsInvalidArgument(err))

	_, err = (&Spec{Kind: Decimal, Precision: 2, Scale: 4}).Format(dialect.Postgres)
	assert.True(t, jsonvalue.IsInvalidArgument(err))

	_, err = (&Spec{Kind: String, Size: -1}).Format(dialect.MySQL)
	assert.True(t, jsonvalue.IsInvalidArgument(err))
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"string":    String,
		"VARCHAR":   String,
		" int ":     Integer,
		"bigint":    BigInt,
		"double":    Double,
		"numeric":   Decimal,
		"bool":      Boolean,
		"json":      JSON,
		"datetime":  Timestamp,
		"uuid":      UUID,
		"timestamp": Timestamp,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseKind("blob")
	assert.True(t, jsonvalue.IsInvalidArgument(err))
}

func TestAccepts(t *testing.T) {
	assert.True(t, Of(Integer).Accepts(1))
	assert.True(t, Of(Double).Accepts(1.5))
	assert.False(t, Of(Integer).Accepts("1"))
	assert.True(t, Of(Boolean).Accepts(true))
	assert.False(t, Of(Boolean).Accepts(1))
	assert.True(t, Of(String).Accepts("x"))
	assert.True(t, Of(Date).Accepts("2024-01-01"))
	assert.False(t, Of(String).Accepts(false))
	assert.False(t, Of(String).Accepts(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "decimal", Decimal.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
	assert.Equal(t, "string(20)", VarChar(20).String())
	assert.Equal(t, "decimal(10,2)", DecimalOf(10, 2).String())
	assert.True(t, BigInt.Numeric())
	assert.False(t, UUID.Numeric())
}
