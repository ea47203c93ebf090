package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/jsonvalue"
	"github.com/syssam/jsonvalue/dialect"
	"github.com/syssam/jsonvalue/dialect/sql"
	"github.com/syssam/jsonvalue/dialect/sql/sqljson"
)

// Rendered is the outcome of rendering a single request.
type Rendered struct {
	Name  string
	Query string
	Args  []any
	Err   error
}

// Renderer renders request batches for a dialect.
type Renderer struct {
	dialect string
	workers int
	logger  *slog.Logger
	// prefix is written before every fragment, e.g. "SELECT ".
	prefix string
	// suffix is called after a successful render to complete the statement.
	suffix func(*sql.Builder)
}

// NewRenderer returns a Renderer for the named dialect.
func NewRenderer(name string, workers int, logger *slog.Logger) (*Renderer, error) {
	d, ok := dialect.Normalize(name)
	if !ok {
		return nil, jsonvalue.NewUnsupportedDialectError(name)
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{dialect: d, workers: workers, logger: logger}, nil
}

// RenderAll renders all requests. Every request gets its own builder, so
// requests are rendered concurrently; results keep the input order. A
// failed request does not stop the others.
func (r *Renderer) RenderAll(ctx context.Context, reqs []Request) ([]Rendered, error) {
	out := make([]Rendered, len(reqs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers)
	for i := range reqs {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				out[i] = r.render(&reqs[i])
				return nil
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	errs := make([]error, 0, len(out))
	for _, res := range out {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
	}
	return out, jsonvalue.NewAggregateError(errs...)
}

func (r *Renderer) render(req *Request) Rendered {
	res := Rendered{Name: req.Name}
	args, err := req.Arguments()
	if err != nil {
		res.Err = err
		return res
	}
	b := sql.Dialect(r.dialect)
	b.WriteString(r.prefix)
	if err := sqljson.ValueOf(b, args, nil); err != nil {
		r.logger.Debug("render failed", "request", req.Name, "dialect", r.dialect, "kind", jsonvalue.KindOf(err), "error", err)
		res.Err = err
		return res
	}
	if r.suffix != nil {
		r.suffix(b)
	}
	res.Query, res.Args = b.Query()
	r.logger.Debug("rendered", "request", req.Name, "dialect", r.dialect, "query", res.Query)
	return res
}

func (jc *JSONValueCommand) renderCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the json_value calls of a request file",
		Example: `  jsonvalue render -f requests.yaml
  jsonvalue render -f requests.yaml --dialect mysql --concurrency 8`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := ReadRequestFile(jc.fs, file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			r, err := NewRenderer(jc.dialectOf(cmd, f), jc.concurrency(cmd), jc.logger)
			if err != nil {
				return err
			}
			results, err := r.RenderAll(cmd.Context(), f.Requests)
			if results != nil {
				printRendered(cmd.OutOrStdout(), results)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "request file, - for stdin (required)")
	_ = cmd.MarkFlagRequired("file")
	jc.dialectFlags(cmd)
	return cmd
}

// dialectFlags registers the flags shared by render and exec. The flags
// are not bound to viper since both commands define them; an explicit
// flag wins over the config.
func (jc *JSONValueCommand) dialectFlags(cmd *cobra.Command) {
	cmd.Flags().String("dialect", "", "target dialect, overrides the request file")
	cmd.Flags().Int("concurrency", 4, "number of requests rendered in parallel")
}

// dialectOf returns the dialect given by flag or config, falling back to
// the one of the request file.
func (jc *JSONValueCommand) dialectOf(cmd *cobra.Command, f *RequestFile) string {
	if fl := cmd.Flags().Lookup("dialect"); fl != nil && fl.Changed {
		return fl.Value.String()
	}
	if d := jc.v.GetString(keyDialect); d != "" {
		return d
	}
	return f.Dialect
}

func (jc *JSONValueCommand) concurrency(cmd *cobra.Command) int {
	if n, err := cmd.Flags().GetInt("concurrency"); err == nil && cmd.Flags().Changed("concurrency") {
		return n
	}
	return jc.v.GetInt(keyConcurrency)
}

func printRendered(w io.Writer, results []Rendered) {
	for _, res := range results {
		fmt.Fprintf(w, "-- %s\n", res.Name)
		if res.Err != nil {
			fmt.Fprintf(w, "-- error: %v\n", res.Err)
			continue
		}
		fmt.Fprintf(w, "%s;\n", res.Query)
		if len(res.Args) > 0 {
			fmt.Fprintf(w, "-- args: %v\n", res.Args)
		}
	}
}
