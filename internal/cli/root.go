// Package cli provides the Cobra command structure for lineguard.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/iw2rmb/lineguard/internal/config"
	"github.com/iw2rmb/lineguard/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	debug      bool
	configPath string
	themesDir  string
}

// loadConfig reads the file named by --config, or the default location, and
// applies flag overrides.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if o.themesDir != "" {
		cfg.ThemesDir = o.themesDir
	}
	if o.debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// NewRootCommand creates the root lineguard command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &globalOptions{}
	edit := &editOptions{}

	rootCmd := &cobra.Command{
		Use:   "lineguard [file]",
		Short: "A terminal code editor with protected lines",
		Long: `lineguard opens a file in a terminal code editor whose lines can be
protected against edits, highlighted and selected with the mouse.

Protected lines follow the document as lines are inserted or removed above
them. Any edit touching a protected line is undone immediately.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, opts, edit, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.themesDir, "themes-dir", "", "directory with additional *.toml themes")

	// Editor flags.
	flags := rootCmd.Flags()
	flags.StringVar(&edit.language, "language", "", "language id (detected from the file when empty)")
	flags.IntSliceVar(&edit.readOnly, "readonly", nil, "protect these lines (offset applied)")
	flags.BoolVar(&edit.lockAll, "lock", false, "protect every line of the document")
	flags.IntSliceVar(&edit.highlight, "highlight", nil, "highlight these lines (offset applied)")
	flags.IntVar(&edit.offset, "offset", 0, "number added to every displayed line number")
	flags.StringVar(&edit.theme, "theme", "", "theme name (overrides the config file)")
	flags.StringVar(&edit.logFile, "log-file", "", "write logs to this file while the editor runs")

	// Add subcommands.
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newThemesCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
