package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zoomcheck/zoomcheck/internal/branding"
	"github.com/zoomcheck/zoomcheck/internal/check"
	"github.com/zoomcheck/zoomcheck/internal/config"
	"github.com/zoomcheck/zoomcheck/internal/notify"
	"github.com/zoomcheck/zoomcheck/internal/platform"
	"github.com/zoomcheck/zoomcheck/internal/probe"
	"github.com/zoomcheck/zoomcheck/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// collaborators are the external systems a check talks to.
type collaborators struct {
	runner      platform.Runner
	fetcherOpts []updater.Option
}

// deps is replaced in tests.
var deps = collaborators{runner: platform.ExecRunner{}}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long:  rootLong(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(cmd, cfgFile)
			if err != nil {
				return err
			}
			settings, err := config.Resolve(v)
			if err != nil {
				return err
			}
			return runCheck(cmd, settings)
		},
	}

	f := cmd.Flags()
	f.Bool(config.KeyForce, false, "Refetch the latest version even if the cache is fresh")
	f.Bool(config.KeyVerbose, false, "Print the installed and latest versions")
	f.Bool(config.KeyNoMessage, false, "Do not notify; exit with status 2 when an update is available")
	f.Bool(config.KeyDirectLink, false, "Link to the installer package instead of the download page")
	f.String(config.KeyCachePath, "~/.cache/"+branding.CacheFileName(), "Cache file location")
	f.Float64(config.KeyTimeout, config.DefaultTimeout, "Cache staleness threshold in seconds")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.FilePath()+")")

	cmd.AddCommand(newVersionCmd(), newConfigCmd(&cfgFile), newCacheCmd(&cfgFile), newDoctorCmd(&cfgFile))
	return cmd
}

func rootLong() string {
	var b strings.Builder
	b.WriteString(`Checks whether the installed Zoom client matches the latest version Zoom
publishes and shows a desktop notification with the result.

The published version is cached and refetched once the cache is older than
--timeout seconds. With --no-message nothing is shown and the result is
reported through the exit status instead (0 up to date, 2 update available).

Every option can also be set in the config file or the environment:
`)
	for _, key := range config.Keys() {
		fmt.Fprintf(&b, "  %s\n", branding.EnvVar(key))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return newRootCmd().Execute()
}

// loadConfig layers flags that exist on cmd over env and the config file.
func loadConfig(cmd *cobra.Command, cfgFile string) (*viper.Viper, error) {
	if cfgFile == "" {
		cfgFile = config.FilePath()
	}
	v, err := config.New(cfgFile)
	if err != nil {
		return nil, err
	}
	for _, key := range config.Keys() {
		if fl := cmd.Flags().Lookup(key); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", key, err)
			}
		}
	}
	return v, nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: branding.CLIName(),
		Level:  level,
	})
}

func runCheck(cmd *cobra.Command, s *config.Settings) error {
	logger := newLogger(cmd.ErrOrStderr(), s.Verbose)

	fetcherOpts := append([]updater.Option{updater.WithLogger(logger)}, deps.fetcherOpts...)
	checker := check.New(
		probe.New(branding.PackageName(), probe.WithRunner(deps.runner), probe.WithLogger(logger)),
		updater.New(fetcherOpts...),
		notify.NewNotifySend(deps.runner, logger),
		check.WithOutput(cmd.OutOrStdout()),
		check.WithLogger(logger),
	)

	res, err := checker.Run(cmd.Context(), check.Options{
		Force:      s.Force,
		Verbose:    s.Verbose,
		NoMessage:  s.NoMessage,
		DirectLink: s.DirectLink,
		CachePath:  s.CachePath,
		Timeout:    s.Timeout,
	})
	if err != nil {
		var parseErr *probe.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintf(cmd.OutOrStdout(), "Could not parse installed version from:\n%s\n", parseErr.Output)
			return &ExitError{Code: ExitProbeParse, Err: err}
		}
		return err
	}

	if s.NoMessage && res.Status == check.StatusUpdateAvailable {
		return &ExitError{Code: ExitUpdateAvailable}
	}
	return nil
}
