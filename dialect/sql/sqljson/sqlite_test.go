package sqljson_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/jsonvalue/dialect"
	"github.com/syssam/jsonvalue/dialect/sql"
	"github.com/syssam/jsonvalue/dialect/sql/sqljson"
	"github.com/syssam/jsonvalue/dialect/sql/sqltype"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	drv, err := sql.Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	defer drv.Close()
	// A single connection keeps the in-memory database alive.
	drv.DB().SetMaxOpenConns(1)

	for _, stmt := range []string{
		`CREATE TABLE docs (id integer PRIMARY KEY, payload text)`,
		`INSERT INTO docs (id, payload) VALUES (1, '{"theString":"abc","a":[{"b":1},{"b":2}],"b c":"spaced"}')`,
		`INSERT INTO docs (id, payload) VALUES (2, '{"other":true}')`,
	} {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}

	tests := []struct {
		path      string
		returning *sqltype.Spec
		want      []*string
	}{
		{"$.theString", nil, []*string{ptr("abc"), nil}},
		{"$.a[1].b", nil, []*string{ptr("2"), nil}},
		{`$['b c']`, nil, []*string{ptr("spaced"), nil}},
		{"$.a[0].b", sqltype.Of(sqltype.Double), []*string{ptr("1"), nil}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			b := sql.Dialect(dialect.SQLite)
			b.WriteString("SELECT ")
			args := sqljson.Value("payload", tt.path)
			args.Returning = tt.returning
			require.NoError(t, sqljson.ValueOf(b, args, nil))
			b.WriteString(" FROM ").Ident("docs").WriteString(" ORDER BY ").Ident("id")

			query, qargs := b.Query()
			rows := &sql.Rows{}
			require.NoError(t, drv.Query(ctx, query, qargs, rows))
			got, err := sql.ScanStrings(rows)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ptr(s string) *string { return &s }
