package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Long: `List the built-in themes followed by those found in the themes
directory. The configured theme is marked with an asterisk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			entries, err := cfg.ThemeLoader()()
			if err != nil {
				return err
			}
			seen := make(map[string]bool, len(entries))
			for _, e := range entries {
				if seen[e.Name] {
					continue
				}
				seen[e.Name] = true
				mark := " "
				if e.Name == cfg.Theme {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, e.Name)
			}
			return nil
		},
	}
}
