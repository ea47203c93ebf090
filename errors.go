package jsonvalue

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a compilation failure.
type Kind uint8

// Failure kinds reported while compiling a json_value call.
const (
	KindUnknown Kind = iota
	KindPathSyntax
	KindUnsupportedBehavior
	KindNonLiteralPath
	KindUnsupportedDialect
	KindInvalidArgument
)

var kindNames = [...]string{
	KindUnknown:             "Unknown",
	KindPathSyntax:          "PathSyntaxError",
	KindUnsupportedBehavior: "UnsupportedBehaviorError",
	KindNonLiteralPath:      "NonLiteralPathError",
	KindUnsupportedDialect:  "UnsupportedDialectError",
	KindInvalidArgument:     "InvalidArgumentError",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Standard sentinel errors, one per kind.
var (
	// ErrPathSyntax is matched by every PathSyntaxError.
	ErrPathSyntax = errors.New("jsonvalue: json path syntax error")

	// ErrUnsupportedBehavior is matched by every UnsupportedBehaviorError.
	ErrUnsupportedBehavior = errors.New("jsonvalue: unsupported on error/on empty behavior")

	// ErrNonLiteralPath is matched by every NonLiteralPathError.
	ErrNonLiteralPath = errors.New("jsonvalue: json path is not a literal")

	// ErrUnsupportedDialect is matched by every UnsupportedDialectError.
	ErrUnsupportedDialect = errors.New("jsonvalue: unsupported dialect")

	// ErrInvalidArgument is matched by every InvalidArgumentError.
	ErrInvalidArgument = errors.New("jsonvalue: invalid argument")
)

// PathSyntaxError reports a malformed json path.
type PathSyntaxError struct {
	Path   string // Path as given by the caller
	Pos    int    // Byte offset of the offending character
	Reason string // Human readable reason
}

// Error returns the error string.
func (e *PathSyntaxError) Error() string {
	return fmt.Sprintf("jsonvalue: invalid json path %q at position %d: %s", e.Path, e.Pos, e.Reason)
}

// Is reports whether the target error matches PathSyntaxError.
func (e *PathSyntaxError) Is(err error) bool {
	return err == ErrPathSyntax
}

// Kind returns KindPathSyntax.
func (e *PathSyntaxError) Kind() Kind { return KindPathSyntax }

// NewPathSyntaxError returns a new PathSyntaxError.
func NewPathSyntaxError(path string, pos int, reason string) *PathSyntaxError {
	return &PathSyntaxError{Path: path, Pos: pos, Reason: reason}
}

// IsPathSyntax returns true if the error is a PathSyntaxError.
func IsPathSyntax(err error) bool {
	if err == nil {
		return false
	}
	var e *PathSyntaxError
	return errors.As(err, &e) || errors.Is(err, ErrPathSyntax)
}

// UnsupportedBehaviorError reports an on error/on empty combination
// that a dialect can neither express natively nor emulate.
type UnsupportedBehaviorError struct {
	Dialect string
	OnError string
	OnEmpty string
}

// Error returns the error string.
func (e *UnsupportedBehaviorError) Error() string {
	return fmt.Sprintf("jsonvalue: cannot emulate %s on error with %s on empty on %s", e.OnError, e.OnEmpty, e.Dialect)
}

// Is reports whether the target error matches UnsupportedBehaviorError.
func (e *UnsupportedBehaviorError) Is(err error) bool {
	return err == ErrUnsupportedBehavior
}

// Kind returns KindUnsupportedBehavior.
func (e *UnsupportedBehaviorError) Kind() Kind { return KindUnsupportedBehavior }

// NewUnsupportedBehaviorError returns a new UnsupportedBehaviorError.
func NewUnsupportedBehaviorError(dialect, onError, onEmpty string) *UnsupportedBehaviorError {
	return &UnsupportedBehaviorError{Dialect: dialect, OnError: onError, OnEmpty: onEmpty}
}

// IsUnsupportedBehavior returns true if the error is an UnsupportedBehaviorError.
func IsUnsupportedBehavior(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedBehaviorError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedBehavior)
}

// NonLiteralPathError reports a path argument that is not known at compile
// time on a dialect that only accepts literal paths.
type NonLiteralPathError struct {
	Dialect string
	Path    string // Description of the path expression
}

// Error returns the error string.
func (e *NonLiteralPathError) Error() string {
	return fmt.Sprintf("jsonvalue: %s json_value only supports literal json paths, but got %s", e.Dialect, e.Path)
}

// Is reports whether the target error matches NonLiteralPathError.
func (e *NonLiteralPathError) Is(err error) bool {
	return err == ErrNonLiteralPath
}

// Kind returns KindNonLiteralPath.
func (e *NonLiteralPathError) Kind() Kind { return KindNonLiteralPath }

// NewNonLiteralPathError returns a new NonLiteralPathError.
func NewNonLiteralPathError(dialect, path string) *NonLiteralPathError {
	return &NonLiteralPathError{Dialect: dialect, Path: path}
}

// IsNonLiteralPath returns true if the error is a NonLiteralPathError.
func IsNonLiteralPath(err error) bool {
	if err == nil {
		return false
	}
	var e *NonLiteralPathError
	return errors.As(err, &e) || errors.Is(err, ErrNonLiteralPath)
}

// UnsupportedDialectError reports a dialect without a capability profile.
type UnsupportedDialectError struct {
	Dialect string
}

// Error returns the error string.
func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("jsonvalue: no json_value support for dialect %q", e.Dialect)
}

// Is reports whether the target error matches UnsupportedDialectError.
func (e *UnsupportedDialectError) Is(err error) bool {
	return err == ErrUnsupportedDialect
}

// Kind returns KindUnsupportedDialect.
func (e *UnsupportedDialectError) Kind() Kind { return KindUnsupportedDialect }

// NewUnsupportedDialectError returns a new UnsupportedDialectError.
func NewUnsupportedDialectError(dialect string) *UnsupportedDialectError {
	return &UnsupportedDialectError{Dialect: dialect}
}

// IsUnsupportedDialect returns true if the error is an UnsupportedDialectError.
func IsUnsupportedDialect(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedDialectError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedDialect)
}

// InvalidArgumentError reports a malformed argument bundle.
type InvalidArgumentError struct {
	Name   string // Argument name
	Reason string
}

// Error returns the error string.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("jsonvalue: invalid argument %s: %s", e.Name, e.Reason)
}

// Is reports whether the target error matches InvalidArgumentError.
func (e *InvalidArgumentError) Is(err error) bool {
	return err == ErrInvalidArgument
}

// Kind returns KindInvalidArgument.
func (e *InvalidArgumentError) Kind() Kind { return KindInvalidArgument }

// NewInvalidArgumentError returns a new InvalidArgumentError.
func NewInvalidArgumentError(name, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Name: name, Reason: reason}
}

// IsInvalidArgument returns true if the error is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidArgumentError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidArgument)
}

// KindOf returns the kind of the first classified error in err's chain,
// or KindUnknown.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// AggregateError represents multiple errors collected during a batch.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "jsonvalue: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("jsonvalue: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
