package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rileyhilliard/statusboard/internal/config"
	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/monitor"
	"github.com/rileyhilliard/statusboard/internal/probe"
	"github.com/spf13/cobra"
)

// SourceFlags holds the flags that override where metrics come from and how
// the layout is drawn.
type SourceFlags struct {
	Host      string
	Interval  string
	NoOutline bool
}

// AddSourceFlags registers --host, --interval and --no-outline on a command.
func AddSourceFlags(cmd *cobra.Command, flags *SourceFlags) {
	cmd.Flags().StringVar(&flags.Host, "host", "", "SSH host to sample (ssh_config alias or user@host); 'localhost' forces local")
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "refresh interval (e.g., 500ms, 2s)")
	cmd.Flags().BoolVar(&flags.NoOutline, "no-outline", false, "draw windows without borders")
}

// ParseInterval parses an interval string into a duration.
// Returns zero duration if the flag is empty.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 500ms, 2s, or 1m.")
	}
	return d, nil
}

// loadConfig finds and loads the config, applies flag overrides and
// validates the result.
func loadConfig(path string, flags SourceFlags) (*config.Config, string, error) {
	cfg, found, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, found, err
	}

	if flags.Host != "" {
		cfg.Source.Host = flags.Host
	}
	interval, err := ParseInterval(flags.Interval)
	if err != nil {
		return nil, found, err
	}
	if interval != 0 {
		cfg.Interval = interval
	}

	if err := config.Validate(cfg); err != nil {
		return nil, found, err
	}
	return cfg, found, nil
}

// newSampler is replaced in tests.
var newSampler = func(cfg *config.Config, log logger.Logger) probe.Sampler {
	opts := []probe.Option{
		probe.WithTimeout(cfg.Source.Timeout),
		probe.WithInsecureHostKey(cfg.Source.InsecureHostKey),
		probe.WithLogger(log),
	}
	if cfg.Source.ProcRoot != "" {
		opts = append(opts, probe.WithRoot(cfg.Source.ProcRoot))
	}
	return probe.New(cfg.Source.Host, opts...)
}

// dashboardOptions converts the validated config into dashboard options.
func dashboardOptions(cfg *config.Config, log logger.Logger) ([]dashboard.Option, error) {
	shutdown, err := dashboard.ParseKey(cfg.ShutdownKey)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Invalid shutdown_key", "")
	}
	bg, err := dashboard.ParseColor(cfg.Background)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Invalid background", "")
	}
	return []dashboard.Option{
		dashboard.WithShutdownKey(shutdown),
		dashboard.WithInterval(cfg.Interval),
		dashboard.WithBackground(bg),
		dashboard.WithLogger(log),
		dashboard.WithBanner(banner(shutdown)),
	}, nil
}

func banner(shutdown dashboard.Key) string {
	return "Press " + strings.ToUpper(shutdown.String()) + " to exit"
}

func monitorOptions(cfg *config.Config, flags SourceFlags, log logger.Logger) []monitor.Option {
	opts := []monitor.Option{
		monitor.WithLogger(log),
		monitor.WithTimeout(cfg.Source.Timeout),
	}
	if flags.NoOutline {
		opts = append(opts, monitor.WithOutline(false))
	}
	return opts
}

// openLog returns the logger a dashboard command uses while it owns the
// screen: the config's log_file, or nothing.
func openLog(cfg *config.Config, prefix string) (logger.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return logger.Noop(), io.NopCloser(nil), nil
	}
	log, closer, err := logger.OpenFile(cfg.LogFile, prefix, verbose)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open log_file",
			"Check the directory exists and is writable, or remove log_file from the config")
	}
	return log, closer, nil
}
