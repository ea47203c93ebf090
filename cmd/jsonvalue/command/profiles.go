package command

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/jsonvalue/dialect/sql/sqljson"
)

// profileView is the printed form of a profile.
type profileView struct {
	Dialect       string   `yaml:"dialect"`
	Navigation    string   `yaml:"navigation"`
	Combinations  []string `yaml:"combinations"`
	Defaults      string   `yaml:"defaults"`
	LiteralPath   bool     `yaml:"literal_path"`
	DocumentCast  string   `yaml:"document_cast,omitempty"`
	PathCast      string   `yaml:"path_cast,omitempty"`
	Returning     string   `yaml:"returning"`
	TryCast       string   `yaml:"try_cast,omitempty"`
	DocumentCheck string   `yaml:"document_check,omitempty"`
	Clauses       []string `yaml:"clauses,omitempty"`
}

func newProfileView(p *sqljson.Profile) profileView {
	v := profileView{
		Dialect:       p.Dialect,
		Navigation:    p.Navigation.String(),
		Defaults:      combination(p.DefaultOnError, p.DefaultOnEmpty),
		LiteralPath:   p.LiteralPath,
		PathCast:      p.PathType,
		Returning:     "cast",
		TryCast:       p.TryCast,
		DocumentCheck: p.DocumentCheck,
	}
	for _, c := range p.Combinations {
		v.Combinations = append(v.Combinations, combination(c.OnError, c.OnEmpty))
	}
	if p.CastParameterDocument {
		v.DocumentCast = p.DocumentType
	}
	if p.ReturningClause {
		v.Returning = "clause"
	}
	if p.NativeEmptyClause {
		v.Clauses = append(v.Clauses, "on empty")
	}
	if p.NativeErrorClause {
		v.Clauses = append(v.Clauses, "on error")
	}
	if p.StrictMode {
		v.Clauses = append(v.Clauses, "strict")
	}
	return v
}

func combination(onError, onEmpty sqljson.BehaviorKind) string {
	return onError.String() + "/" + onEmpty.String()
}

func (jc *JSONValueCommand) profilesCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "profiles [dialect]...",
		Short: "Print the json_value capabilities of each dialect",
		RunE: func(cmd *cobra.Command, args []string) error {
			ps := sqljson.Profiles()
			if len(args) > 0 {
				ps = ps[:0]
				for _, name := range args {
					p, ok := sqljson.LookupProfile(name)
					if !ok {
						return fmt.Errorf("unknown dialect %q", name)
					}
					ps = append(ps, p)
				}
			}
			views := make([]profileView, len(ps))
			for i, p := range ps {
				views[i] = newProfileView(p)
			}
			switch output {
			case "table":
				return printProfiles(cmd.OutOrStdout(), views)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(views); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, yaml)")
	return cmd
}

func printProfiles(w io.Writer, views []profileView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DIALECT\tNAVIGATION\tON ERROR/ON EMPTY\tDEFAULT\tLITERAL PATH\tRETURNING\tCLAUSES")
	for _, v := range views {
		clauses := strings.Join(v.Clauses, ",")
		if clauses == "" {
			clauses = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\t%s\n",
			v.Dialect, v.Navigation, strings.Join(v.Combinations, " "), v.Defaults, v.LiteralPath, v.Returning, clauses)
	}
	return tw.Flush()
}
