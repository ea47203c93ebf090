package sql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type stateError struct{ state string }

func (e stateError) Error() string    { return "state " + e.state }
func (e stateError) SQLState() string { return e.state }

type mssqlError struct{ number int32 }

func (e mssqlError) Error() string         { return fmt.Sprintf("mssql: error %d", e.number) }
func (e mssqlError) SQLErrorNumber() int32 { return e.number }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"nil", nil, ClassUnknown},
		{"pq invalid json", &pq.Error{Code: "22P02", Message: "invalid input syntax for type json"}, ClassMalformedDocument},
		{"pq invalid integer", &pq.Error{Code: "22P02", Message: `invalid input syntax for type integer: "abc"`}, ClassInvalidCast},
		{"pq member not found", &pq.Error{Code: "2203A", Message: "JSON object does not contain key"}, ClassNoItem},
		{"pq scalar required", fmt.Errorf("dialect/sql: query: %w", &pq.Error{Code: "2203F"}), ClassNonScalar},
		{"pq unrelated", &pq.Error{Code: "42P01", Message: "relation does not exist"}, ClassUnknown},
		{"sqlstate", stateError{"22032"}, ClassMalformedDocument},
		{"mysql invalid json", &mysql.MySQLError{Number: 3141, Message: "Invalid JSON text in argument 1"}, ClassMalformedDocument},
		{"mysql missing value", &mysql.MySQLError{Number: 3966}, ClassNoItem},
		{"mysql cast", fmt.Errorf("wrapped: %w", &mysql.MySQLError{Number: 3156}), ClassInvalidCast},
		{"mssql strict", mssqlError{13608}, ClassNoItem},
		{"mssql scalar", mssqlError{13623}, ClassNonScalar},
		{"sqlite", errors.New("SQL logic error: malformed JSON (1)"), ClassMalformedDocument},
		{"cockroach text", errors.New(`pq: could not parse JSON: unable to decode JSON`), ClassMalformedDocument},
		{"unknown", errors.New("connection reset"), ClassUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestErrorClassHelpers(t *testing.T) {
	assert.True(t, IsMalformedDocumentError(errors.New("malformed JSON")))
	assert.False(t, IsMalformedDocumentError(nil))
	assert.True(t, IsNoItemError(&mysql.MySQLError{Number: 3966}))
	assert.Equal(t, "malformed document", ClassMalformedDocument.String())
	assert.Equal(t, "unknown", ClassUnknown.String())
}
