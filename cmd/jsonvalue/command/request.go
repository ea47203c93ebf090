package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/syssam/jsonvalue/dialect/sql/sqljson"
	"github.com/syssam/jsonvalue/dialect/sql/sqltype"
)

// RequestFile is the content of a request file.
type RequestFile struct {
	Dialect  string    `yaml:"dialect"`
	Requests []Request `yaml:"requests"`
}

// Request describes a single json_value call.
type Request struct {
	Name      string     `yaml:"name"`
	Document  Document   `yaml:"document"`
	Path      *string    `yaml:"path"`
	PathParam *string    `yaml:"path_param"`
	Returning *Returning `yaml:"returning"`
	// Behaviors are kept as nodes, so an explicit "null" can be told apart
	// from an absent key.
	OnError   yaml.Node `yaml:"on_error"`
	OnEmpty   yaml.Node `yaml:"on_empty"`
	JSONTyped bool      `yaml:"json_typed"`
}

// Document selects the document expression. Exactly one field is set.
type Document struct {
	Column string  `yaml:"column"`
	Param  *string `yaml:"param"`
	Raw    string  `yaml:"raw"`
}

// Returning is the returning type of a request.
type Returning struct {
	Kind      string `yaml:"kind"`
	Size      int    `yaml:"size"`
	Precision int    `yaml:"precision"`
	Scale     int    `yaml:"scale"`
}

// ReadRequestFile decodes the request file at path, "-" reads stdin.
func ReadRequestFile(fs afero.Fs, path string, stdin io.Reader) (*RequestFile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = afero.ReadFile(fs, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %s: %w", path, err)
	}
	return ParseRequestFile(data)
}

// ParseRequestFile decodes a request file.
func ParseRequestFile(data []byte) (*RequestFile, error) {
	var f RequestFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request file: %w", err)
	}
	if len(f.Requests) == 0 {
		return nil, errors.New("request file has no requests")
	}
	for i := range f.Requests {
		if f.Requests[i].Name == "" {
			f.Requests[i].Name = fmt.Sprintf("request-%d", i+1)
		}
	}
	return &f, nil
}

// Arguments converts the request to json_value arguments.
func (r *Request) Arguments() (*sqljson.Arguments, error) {
	doc, err := r.Document.expr()
	if err != nil {
		return nil, err
	}
	args := &sqljson.Arguments{Document: doc, JSONTyped: r.JSONTyped}
	switch {
	case r.Path != nil && r.PathParam != nil:
		return nil, errors.New("path and path_param are mutually exclusive")
	case r.Path != nil:
		args.Path = sqljson.Literal{V: *r.Path}
	case r.PathParam != nil:
		args.Path = sqljson.Param{V: *r.PathParam}
	default:
		return nil, errors.New("missing path")
	}
	if r.Returning != nil {
		k, err := sqltype.ParseKind(r.Returning.Kind)
		if err != nil {
			return nil, err
		}
		args.Returning = &sqltype.Spec{Kind: k, Size: r.Returning.Size, Precision: r.Returning.Precision, Scale: r.Returning.Scale}
	}
	if args.OnError, err = behavior(&r.OnError); err != nil {
		return nil, fmt.Errorf("on_error: %w", err)
	}
	if args.OnEmpty, err = behavior(&r.OnEmpty); err != nil {
		return nil, fmt.Errorf("on_empty: %w", err)
	}
	return args, nil
}

func (d Document) expr() (sqljson.Expr, error) {
	var (
		n int
		x sqljson.Expr
	)
	if d.Column != "" {
		n, x = n+1, sqljson.Column(d.Column)
	}
	if d.Param != nil {
		n, x = n+1, sqljson.Param{V: *d.Param}
	}
	if d.Raw != "" {
		n, x = n+1, sqljson.Raw(d.Raw)
	}
	if n != 1 {
		return nil, errors.New("document requires exactly one of column, param or raw")
	}
	return x, nil
}

// behavior decodes "null", "error" or {default: v}. An absent key
// yields nil, the dialect default.
func behavior(n *yaml.Node) (*sqljson.Behavior, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return sqljson.NullOn(), nil
		}
		k, ok := sqljson.ParseBehaviorKind(n.Value)
		switch {
		case !ok:
			return nil, fmt.Errorf("unknown behavior %q", n.Value)
		case k == sqljson.BehaviorDefault:
			return nil, errors.New("default behavior requires a value, use {default: <value>}")
		}
		return &sqljson.Behavior{Kind: k}, nil
	case yaml.MappingNode:
		var m map[string]any
		if err := n.Decode(&m); err != nil {
			return nil, err
		}
		v, ok := m["default"]
		if !ok || len(m) != 1 {
			return nil, errors.New("expected a mapping with a single default key")
		}
		return sqljson.DefaultOn(sqljson.Literal{V: v}), nil
	default:
		return nil, fmt.Errorf("unexpected behavior at line %d", n.Line)
	}
}
