package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// ErrorClass classifies the runtime errors a database raises while
// evaluating a json_value expression.
type ErrorClass uint8

// Error classes.
const (
	ClassUnknown ErrorClass = iota
	// ClassMalformedDocument is raised when the document is not valid json.
	ClassMalformedDocument
	// ClassNoItem is raised when the path selects nothing and the call
	// asked for an error on empty.
	ClassNoItem
	// ClassNonScalar is raised when the path selects an object or an array.
	ClassNonScalar
	// ClassInvalidCast is raised when the extracted value cannot be
	// converted to the returning type.
	ClassInvalidCast
)

// String returns the class description.
func (c ErrorClass) String() string {
	switch c {
	case ClassMalformedDocument:
		return "malformed document"
	case ClassNoItem:
		return "no item"
	case ClassNonScalar:
		return "non-scalar item"
	case ClassInvalidCast:
		return "invalid cast"
	default:
		return "unknown"
	}
}

// sqlStateError is implemented by drivers reporting SQLSTATE codes (pgx).
type sqlStateError interface {
	SQLState() string
}

// sqlErrorNumberer is implemented by sqlserver driver errors.
type sqlErrorNumberer interface {
	SQLErrorNumber() int32
}

// PostgreSQL and CockroachDB SQLSTATE codes (class 22, data exception).
const (
	pgInvalidTextRepresentation = "22P02"
	pgNumericValueOutOfRange    = "22003"
	pgInvalidJSONText           = "22032"
	pgNoSQLJSONItem             = "22035"
	pgSingletonItemRequired     = "22038"
	pgMemberNotFound            = "2203A"
	pgScalarRequired            = "2203F"
)

// MySQL error numbers.
const (
	mysqlInvalidJSONText        = 3140
	mysqlInvalidJSONTextInParam = 3141
	mysqlInvalidJSONValueCast   = 3156
	mysqlMissingJSONValue       = 3966
	mysqlMultipleJSONValues     = 3967
)

// SQL Server error numbers.
const (
	mssqlPropertyNotFound = 13608
	mssqlInvalidJSON      = 13609
	mssqlScalarNotFound   = 13623
	mssqlConversionFailed = 245
)

// Classify returns the class of a json_value runtime error.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}

	// Check for SQLSTATE codes (lib/pq, pgx)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if c := classifyState(string(pqErr.Code), pqErr.Message); c != ClassUnknown {
			return c
		}
	}
	if e, ok := asError[sqlStateError](err); ok {
		if c := classifyState(e.SQLState(), err.Error()); c != ClassUnknown {
			return c
		}
	}

	// Check for MySQL error numbers
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlInvalidJSONText, mysqlInvalidJSONTextInParam:
			return ClassMalformedDocument
		case mysqlMissingJSONValue:
			return ClassNoItem
		case mysqlMultipleJSONValues:
			return ClassNonScalar
		case mysqlInvalidJSONValueCast:
			return ClassInvalidCast
		}
	}

	// Check for SQL Server error numbers
	if e, ok := asError[sqlErrorNumberer](err); ok {
		switch e.SQLErrorNumber() {
		case mssqlInvalidJSON:
			return ClassMalformedDocument
		case mssqlPropertyNotFound:
			return ClassNoItem
		case mssqlScalarNotFound:
			return ClassNonScalar
		case mssqlConversionFailed:
			return ClassInvalidCast
		}
	}

	// Fallback to string matching for drivers that don't implement interfaces
	msg := err.Error()
	switch {
	case containsAny(msg,
		"malformed JSON",                      // SQLite
		"could not parse JSON",                // CockroachDB
		"Invalid JSON text",                   // MySQL
		"JSON text is not properly formatted", // SQL Server
	):
		return ClassMalformedDocument
	case containsAny(msg,
		"Property cannot be found on the specified JSON path", // SQL Server
		"No value was found",                                  // MySQL
	):
		return ClassNoItem
	case containsAny(msg,
		"Scalar value cannot be found", // SQL Server
	):
		return ClassNonScalar
	}
	return ClassUnknown
}

func classifyState(code, msg string) ErrorClass {
	switch code {
	case pgInvalidJSONText:
		return ClassMalformedDocument
	case pgInvalidTextRepresentation:
		// Raised for both json input and casts of the extracted text.
		if containsAny(strings.ToLower(msg), "json") {
			return ClassMalformedDocument
		}
		return ClassInvalidCast
	case pgNumericValueOutOfRange:
		return ClassInvalidCast
	case pgNoSQLJSONItem, pgMemberNotFound:
		return ClassNoItem
	case pgSingletonItemRequired, pgScalarRequired:
		return ClassNonScalar
	}
	return ClassUnknown
}

// IsMalformedDocumentError reports if the error resulted from a document
// that is not valid json.
func IsMalformedDocumentError(err error) bool {
	return Classify(err) == ClassMalformedDocument
}

// IsNoItemError reports if the error resulted from a path that selected
// nothing under an error on empty clause.
func IsNoItemError(err error) bool {
	return Classify(err) == ClassNoItem
}

// asError attempts to extract an error implementing interface T from the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
