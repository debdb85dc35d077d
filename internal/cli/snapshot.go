package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/rileyhilliard/statusboard/internal/canvas"
	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/monitor"
	"github.com/rileyhilliard/statusboard/internal/ui"
	"github.com/spf13/cobra"
)

type snapshotOptions struct {
	flags   SourceFlags
	noColor bool
	settle  time.Duration
	size    string
}

// snapshotCommand renders one frame on a canvas and prints it.
func snapshotCommand(cmd *cobra.Command, o snapshotOptions) error {
	cfg, _, err := loadConfig(cfgFile, o.flags)
	if err != nil {
		return err
	}
	width, height, err := parseSize(o.size)
	if err != nil {
		return err
	}

	log := logger.Default()
	opts, err := dashboardOptions(cfg, log)
	if err != nil {
		return err
	}
	source := cfg.Source.Host
	if source == "" {
		source = "localhost"
	}
	opts = append(opts, dashboard.WithBanner("statusboard snapshot of "+source))

	c := canvas.New(width, height)
	bg, _ := dashboard.ParseColor(cfg.Background)
	c.SetBackground(bg)

	if _, err := dashboard.New(c, opts...); err != nil {
		return err
	}
	m, err := monitor.New(c, cfg, newSampler(cfg, log), monitorOptions(cfg, o.flags, log)...)
	if err != nil {
		return err
	}
	defer m.Close()

	var spinner *ui.Spinner
	if isTerminal() {
		spinner = ui.NewSpinner("Sampling " + source)
		spinner.SetOutput(cmd.ErrOrStderr())
		spinner.Start()
	}
	err = m.Refresh()
	if err == nil && o.settle > 0 {
		time.Sleep(o.settle)
		err = m.Refresh()
	}
	if spinner != nil {
		if err != nil {
			spinner.Fail()
		} else {
			spinner.Success()
		}
	}
	if err != nil {
		return err
	}

	out := termenv.NewOutput(cmd.OutOrStdout())
	profile := out.EnvColorProfile()
	if o.noColor {
		profile = termenv.Ascii
	}
	fmt.Fprintln(cmd.OutOrStdout(), c.Render(profile))
	return nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (width, height int, err error) {
	var extra string
	n, _ := fmt.Sscanf(strings.ToLower(strings.TrimSpace(s)), "%dx%d%s", &width, &height, &extra)
	if n != 2 || width <= 0 || height <= 0 {
		return 0, 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a screen size", s),
			"Use WIDTHxHEIGHT, e.g. 80x24.")
	}
	return width, height, nil
}
