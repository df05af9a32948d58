package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoomcheck/zoomcheck/internal/config"
)

func newConfigCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage persistent defaults",
		Long: `Read and write defaults for the check options, stored at
~/.config/zoomcheck/config.yaml. Keys match the flag names:
force, verbose, no-message, direct-link, cache-path, timeout.`,
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := config.Set(configPath(*cfgFile), key, value); err != nil {
				return fmt.Errorf("setting config key %q: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get the effective value of a configuration key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.New(configPath(*cfgFile))
			if err != nil {
				return err
			}
			value, err := config.Get(v, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.AddCommand(setCmd, getCmd)
	return cmd
}

func configPath(cfgFile string) string {
	if cfgFile == "" {
		return config.FilePath()
	}
	return cfgFile
}
