package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/c360studio/semonto/ontology"
)

func childrenCmd(a *app) *cobra.Command {
	var (
		level        int
		intermediate bool
	)

	cmd := &cobra.Command{
		Use:   "children <source> <id>",
		Short: "List the descendants of a term",
		Long: `List descendants of a term through every child relation (can_be,
has_part, and configured child kinds).

--level bounds the depth; a negative level is unbounded. Without
--intermediate only the terms exactly --level steps down are listed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			term, err := a.lookup(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			writeTerms(cmd.OutOrStdout(), term.RChildren(level, intermediate))
			return nil
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", 1, "Depth bound (negative for unbounded)")
	cmd.Flags().BoolVarP(&intermediate, "intermediate", "i", false, "Include terms above the depth bound")
	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <source> <id>",
		Short: "Print a term with its parents and children",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			term, err := a.lookup(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprint(w, term.OBO())
			fmt.Fprintln(w)
			fmt.Fprintln(w, "parents:")
			writeTerms(w, term.Parents().Dedup())
			fmt.Fprintln(w, "children:")
			writeTerms(w, term.Children().Dedup())
			return nil
		},
	}
}

// lookup loads src and returns the term id.
func (a *app) lookup(ctx context.Context, src, id string) (*ontology.Term, error) {
	l, err := a.loader(nil)
	if err != nil {
		return nil, err
	}
	o, err := l.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return o.Get(id)
}

// writeTerms prints one "id<TAB>name" line per term. Placeholders are
// marked with a trailing "(undefined)".
func writeTerms(w io.Writer, terms ontology.TermList) {
	for _, t := range terms {
		if t.Known() {
			fmt.Fprintf(w, "%s\t%s\n", t.ID(), t.Name)
		} else {
			fmt.Fprintf(w, "%s\t(undefined)\n", t.ID())
		}
	}
}
