// Package dialect names the database dialects the json_value compiler
// targets and defines the driver abstraction used to run compiled fragments.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.CockroachDB = "cockroachdb"
//	dialect.Postgres    = "postgres"
//	dialect.MySQL       = "mysql"
//	dialect.MariaDB     = "mariadb"
//	dialect.SQLite      = "sqlite"
//	dialect.SQLServer   = "sqlserver"
//
// Common spellings ("PostgreSQL", "crdb", "sqlite3", "mssql") are accepted by
// Normalize, which folds case before the lookup.
//
// # Driver Interface
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// Debug wraps any Driver and logs every statement through log/slog.
//
// # Sub-packages
//
//   - dialect/sql: SQL text builder and database/sql driver implementation
//   - dialect/sql/sqltype: portable cast target types
//   - dialect/sql/sqljson: json path parsing and json_value rendering
package dialect
