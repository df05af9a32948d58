package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoomcheck/zoomcheck/internal/branding"
	"github.com/zoomcheck/zoomcheck/internal/config"
	"github.com/zoomcheck/zoomcheck/internal/doctor"
	"github.com/zoomcheck/zoomcheck/internal/probe"
)

func newDoctorCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the tools and cache a version check needs are in place",
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

			logger := newLogger(cmd.ErrOrStderr(), s.Verbose)
			r := doctor.Run(cmd.Context(), cmd.OutOrStdout(), doctor.Options{
				CachePath: s.CachePath,
				Timeout:   s.Timeout,
				Prober:    probe.New(branding.PackageName(), probe.WithRunner(deps.runner), probe.WithLogger(logger)),
			})
			if !r.OK() {
				return fmt.Errorf("%d check(s) failed", r.Failures)
			}
			return nil
		},
	}
	cmd.Flags().String(config.KeyCachePath, "~/.cache/"+branding.CacheFileName(), "Cache file location")
	cmd.Flags().Float64(config.KeyTimeout, config.DefaultTimeout, "Cache staleness threshold in seconds")
	return cmd
}
