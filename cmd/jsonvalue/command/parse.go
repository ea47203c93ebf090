package command

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/syssam/jsonvalue"
	"github.com/syssam/jsonvalue/dialect/sql/sqljson"
)

func (jc *JSONValueCommand) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <path>...",
		Short: "Parse json paths and print their steps",
		Example: `  jsonvalue parse '$.a.b[2]'
  jsonvalue parse "$['b c']" '$.x'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs []error
			for _, s := range args {
				if err := printPath(cmd.OutOrStdout(), s); err != nil {
					errs = append(errs, err)
				}
			}
			return jsonvalue.NewAggregateError(errs...)
		},
	}
}

// printPath prints the steps and the canonical form of s, or the syntax
// error with a caret under the offending position.
func printPath(w io.Writer, s string) error {
	p, err := sqljson.ParsePath(s)
	if err != nil {
		var perr *jsonvalue.PathSyntaxError
		if errors.As(err, &perr) {
			// Pos is a byte offset; the caret goes under the rune.
			col := utf8.RuneCountInString(s[:min(perr.Pos, len(s))])
			fmt.Fprintf(w, "%s\n%s^ %s\n", s, strings.Repeat(" ", col), perr.Reason)
		}
		return err
	}
	fmt.Fprintln(w, p)
	for _, e := range p {
		switch e := e.(type) {
		case sqljson.Attribute:
			fmt.Fprintf(w, "  attribute %q\n", e.Name)
		case sqljson.IndexAccess:
			fmt.Fprintf(w, "  index %d\n", e.Index)
		}
	}
	return nil
}
