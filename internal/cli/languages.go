package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/lineguard/syntax"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages [query]",
		Short: "List supported languages",
		Long: `List the languages with a bundled grammar, with their file extensions
and aliases. With a query, list the best fuzzy matches instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				ids := syntax.Lookup(args[0])
				if len(ids) == 0 {
					return fmt.Errorf("no language matches %q", args[0])
				}
				for _, id := range ids {
					fmt.Fprintln(out, id)
				}
				return nil
			}

			svc := syntax.NewService(syntax.Options{})
			if err := svc.LoadAll(); err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			byID := make(map[string]syntax.Language)
			for _, l := range syntax.Languages() {
				byID[l.ID] = l
			}
			for _, id := range svc.SupportedLanguages() {
				l := byID[id]
				fmt.Fprintf(out, "%-16s %-20s %s\n", id,
					strings.Join(l.Extensions, ","), strings.Join(l.Aliases, ","))
			}
			return nil
		},
	}
}
