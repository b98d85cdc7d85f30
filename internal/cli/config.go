package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/lineguard/internal/config"
	"github.com/iw2rmb/lineguard/internal/logging"
)

func newConfigCommand(opts *globalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration lineguard would use, as TOML. With --write,
store it at the config path when no file exists there yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if write {
				return writeConfig(opts, cfg)
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "write the configuration file if it does not exist")
	return cmd
}

func writeConfig(opts *globalOptions, cfg *config.Config) error {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.Path(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	logging.Default().Info("config written", logging.FieldPath, path)
	return nil
}
