// Package sqltype describes portable cast target types and formats them
// for a specific dialect.
package sqltype

import (
	"fmt"
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/jsonvalue"
	"github.com/syssam/jsonvalue/dialect"
)

// Kind is a portable type category.
type Kind uint8

// Supported type kinds.
const (
	Invalid Kind = iota
	String
	Integer
	BigInt
	Float
	Double
	Decimal
	Boolean
	JSON
	Date
	Time
	Timestamp
	UUID
)

var kindNames = [...]string{
	Invalid:   "invalid",
	String:    "string",
	Integer:   "integer",
	BigInt:    "bigint",
	Float:     "float",
	Double:    "double",
	Decimal:   "decimal",
	Boolean:   "boolean",
	JSON:      "json",
	Date:      "date",
	Time:      "time",
	Timestamp: "timestamp",
	UUID:      "uuid",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Numeric reports whether values of the kind are numbers.
func (k Kind) Numeric() bool {
	switch k {
	case Integer, BigInt, Float, Double, Decimal:
		return true
	}
	return false
}

var kindAliases = map[string]Kind{
	"string":    String,
	"varchar":   String,
	"text":      String,
	"integer":   Integer,
	"int":       Integer,
	"bigint":    BigInt,
	"long":      BigInt,
	"float":     Float,
	"real":      Float,
	"double":    Double,
	"decimal":   Decimal,
	"numeric":   Decimal,
	"boolean":   Boolean,
	"bool":      Boolean,
	"json":      JSON,
	"date":      Date,
	"time":      Time,
	"timestamp": Timestamp,
	"datetime":  Timestamp,
	"uuid":      UUID,
}

// ParseKind parses a kind name or one of its common aliases.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return Invalid, jsonvalue.NewInvalidArgumentError("returning", fmt.Sprintf("unknown type %q", s))
}

// Spec is a cast target type. Size applies to strings, Precision and
// Scale to decimals.
type Spec struct {
	Kind      Kind
	Size      int
	Precision int
	Scale     int
}

// Of returns a Spec of the given kind without modifiers.
func Of(k Kind) *Spec {
	return &Spec{Kind: k}
}

// VarChar returns a string Spec limited to n characters.
func VarChar(n int) *Spec {
	return &Spec{Kind: String, Size: n}
}

// DecimalOf returns a decimal Spec with the given precision and scale.
func DecimalOf(precision, scale int) *Spec {
	return &Spec{Kind: Decimal, Precision: precision, Scale: scale}
}

// String returns a portable description of the type.
func (s *Spec) String() string {
	switch {
	case s.Kind == String && s.Size > 0:
		return fmt.Sprintf("string(%d)", s.Size)
	case s.Kind == Decimal && s.Precision > 0:
		return fmt.Sprintf("decimal(%d,%d)", s.Precision, s.Scale)
	default:
		return s.Kind.String()
	}
}

// Accepts reports whether v is a literal value compatible with the type.
// Numeric kinds take Go numbers, booleans take bool and the remaining
// kinds take strings.
func (s *Spec) Accepts(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return s.Kind.Numeric()
	case bool:
		return s.Kind == Boolean
	case string:
		return !s.Kind.Numeric() && s.Kind != Boolean
	default:
		return false
	}
}

// Format returns the cast target of the type for the given dialect.
func (s *Spec) Format(name string) (string, error) {
	if s.Size < 0 || s.Precision < 0 || s.Scale < 0 || s.Scale > s.Precision && s.Precision > 0 {
		return "", jsonvalue.NewInvalidArgumentError("returning", fmt.Sprintf("invalid modifiers for %s", s))
	}
	var (
		f   string
		err error
	)
	switch name {
	case dialect.Postgres, dialect.CockroachDB:
		if t := s.postgresType(); t != nil {
			f, err = postgres.FormatType(t)
		}
	case dialect.SQLite:
		if t := s.sqliteType(); t != nil {
			f, err = sqlite.FormatType(t)
		}
	case dialect.MySQL, dialect.MariaDB:
		f, err = s.mysqlCast(name)
	case dialect.SQLServer:
		f = s.sqlserverType()
	default:
		return "", jsonvalue.NewUnsupportedDialectError(name)
	}
	if err != nil {
		return "", jsonvalue.NewInvalidArgumentError("returning", err.Error())
	}
	if f == "" {
		return "", jsonvalue.NewInvalidArgumentError("returning", fmt.Sprintf("type %s is not supported on %s", s, name))
	}
	return f, nil
}

func (s *Spec) postgresType() schema.Type {
	switch s.Kind {
	case String:
		if s.Size > 0 {
			return &schema.StringType{T: postgres.TypeVarChar, Size: s.Size}
		}
		return &schema.StringType{T: postgres.TypeText}
	case Integer:
		return &schema.IntegerType{T: postgres.TypeInteger}
	case BigInt:
		return &schema.IntegerType{T: postgres.TypeBigInt}
	case Float:
		return &schema.FloatType{T: postgres.TypeReal}
	case Double:
		return &schema.FloatType{T: postgres.TypeDouble}
	case Decimal:
		return &schema.DecimalType{T: postgres.TypeNumeric, Precision: s.Precision, Scale: s.Scale}
	case Boolean:
		return &schema.BoolType{T: postgres.TypeBoolean}
	case JSON:
		return &schema.JSONType{T: postgres.TypeJSONB}
	case Date:
		return &schema.TimeType{T: postgres.TypeDate}
	case Time:
		return &schema.TimeType{T: postgres.TypeTime}
	case Timestamp:
		return &schema.TimeType{T: postgres.TypeTimestamp}
	case UUID:
		return &schema.UUIDType{T: postgres.TypeUUID}
	}
	return nil
}

// sqliteType maps kinds onto the storage classes sqlite casts to.
func (s *Spec) sqliteType() schema.Type {
	switch s.Kind {
	case Integer, BigInt, Boolean:
		return &schema.IntegerType{T: "integer"}
	case Float, Double:
		return &schema.FloatType{T: "real"}
	case Decimal:
		return &schema.DecimalType{T: "numeric"}
	case String, JSON, Date, Time, Timestamp, UUID:
		return &schema.StringType{T: "text"}
	}
	return nil
}

// mysqlCast returns the CAST target, which is a narrower set of names
// than the column types MySQL accepts.
func (s *Spec) mysqlCast(name string) (string, error) {
	switch s.Kind {
	case String:
		if s.Size > 0 {
			return fmt.Sprintf("char(%d)", s.Size), nil
		}
		return "char", nil
	case Integer, BigInt, Boolean:
		return "signed", nil
	case Float:
		if name == dialect.MariaDB {
			return "double", nil
		}
		return "float", nil
	case Double:
		return "double", nil
	case Decimal:
		return mysql.FormatType(&schema.DecimalType{T: mysql.TypeDecimal, Precision: s.Precision, Scale: s.Scale})
	case JSON:
		if name == dialect.MariaDB {
			return "char", nil
		}
		return mysql.FormatType(&schema.JSONType{T: mysql.TypeJSON})
	case Date:
		return "date", nil
	case Time:
		return "time", nil
	case Timestamp:
		return "datetime", nil
	case UUID:
		return "char(36)", nil
	}
	return "", nil
}

func (s *Spec) sqlserverType() string {
	switch s.Kind {
	case String:
		if s.Size > 0 {
			return fmt.Sprintf("nvarchar(%d)", s.Size)
		}
		return "nvarchar(max)"
	case Integer:
		return "int"
	case BigInt:
		return "bigint"
	case Float:
		return "real"
	case Double:
		return "float"
	case Decimal:
		if s.Precision > 0 {
			return fmt.Sprintf("decimal(%d,%d)", s.Precision, s.Scale)
		}
		return "decimal"
	case Boolean:
		return "bit"
	case JSON:
		return "nvarchar(max)"
	case Date:
		return "date"
	case Time:
		return "time"
	case Timestamp:
		return "datetime2"
	case UUID:
		return "uniqueidentifier"
	}
	return ""
}
