package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zoomcheck/zoomcheck/internal/branding"
	"github.com/zoomcheck/zoomcheck/internal/config"
	"github.com/zoomcheck/zoomcheck/internal/updater"
)

func newCacheCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the cached version descriptor",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cache location, age and cached version without fetching",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}
			s, err := config.Resolve(v)
			if err != nil {
				return err
			}

			state, err := updater.Stat(s.CachePath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:       %s\n", state.Path)
			if !state.Exists {
				fmt.Fprintln(out, "No cached descriptor")
				return nil
			}

			now := time.Now()
			fmt.Fprintf(out, "Fetched at: %s\n", state.FetchedAt.Format(time.RFC3339))
			fmt.Fprintf(out, "Age:        %s\n", state.Age(now).Round(time.Second))
			fmt.Fprintf(out, "Stale:      %t (timeout %s)\n", state.IsStale(now, s.Timeout), s.Timeout)

			version, err := updater.ReadVersion(s.CachePath)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Latest:     %s\n", version)
			return nil
		},
	}
	showCmd.Flags().String(config.KeyCachePath, "~/.cache/"+branding.CacheFileName(), "Cache file location")
	showCmd.Flags().Float64(config.KeyTimeout, config.DefaultTimeout, "Cache staleness threshold in seconds")

	cmd.AddCommand(showCmd)
	return cmd
}
