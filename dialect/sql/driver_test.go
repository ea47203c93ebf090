package sql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/jsonvalue/dialect"
)

func TestDriverQuery(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	drv := OpenDB(dialect.CockroachDB, db)
	assert.Equal(t, dialect.CockroachDB, drv.Dialect())

	mock.ExpectQuery(`SELECT ("t"."json")#>>array['theString'] FROM "t"`).
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("abc").AddRow(nil))
	rows := &Rows{}
	err = drv.Query(context.Background(), `SELECT ("t"."json")#>>array['theString'] FROM "t"`, []any{}, rows)
	require.NoError(t, err)
	values, err := ScanStrings(rows)
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.NotNil(t, values[0])
	assert.Equal(t, "abc", *values[0])
	assert.Nil(t, values[1])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverQueryErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.Postgres, db)

	err = drv.Query(context.Background(), "SELECT 1", []any{}, nil)
	assert.EqualError(t, err, "dialect/sql: invalid type <nil>. expect *sql.Rows")
	err = drv.Query(context.Background(), "SELECT 1", nil, &Rows{})
	assert.EqualError(t, err, "dialect/sql: invalid type <nil>. expect []any for args")

	mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("boom"))
	err = drv.Query(context.Background(), "SELECT 1", []any{}, &Rows{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dialect/sql: query: boom")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.MySQL, db)

	mock.ExpectExec("DELETE FROM t").WillReturnResult(sqlmock.NewResult(0, 2))
	var res Result
	require.NoError(t, drv.Exec(context.Background(), "DELETE FROM t", []any{}, &res))
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	mock.ExpectExec("DELETE FROM t").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, drv.Exec(context.Background(), "DELETE FROM t", []any{}, nil))

	err = drv.Exec(context.Background(), "DELETE FROM t", []any{}, 1)
	assert.EqualError(t, err, "dialect/sql: invalid type int. expect *sql.Result")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.Postgres, db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectCommit()
	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	rows := &Rows{}
	require.NoError(t, tx.Query(context.Background(), "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenUnknownDialect(t *testing.T) {
	_, err := Open("oracle", "")
	assert.EqualError(t, err, `dialect/sql: unknown dialect "oracle"`)
}

func TestEscapeStringValue(t *testing.T) {
	assert.Equal(t, "plain", escapeStringValue("plain"))
	assert.Equal(t, "it''s", escapeStringValue("it's"))
	assert.Equal(t, `a\\b`, escapeStringValue(`a\b`))
}
