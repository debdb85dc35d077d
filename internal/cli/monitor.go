package cli

import (
	"os"

	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/monitor"
	"github.com/rileyhilliard/statusboard/internal/term"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"
)

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return xterm.IsTerminal(int(os.Stdin.Fd())) && xterm.IsTerminal(int(os.Stdout.Fd()))
}

func requireTerminal(command string) error {
	if isTerminal() {
		return nil
	}
	return errors.New(errors.ErrTerminal,
		"'statusboard "+command+"' needs an interactive terminal",
		"Run it from a terminal, or use 'statusboard snapshot' to print a single frame.")
}

// monitorCommand runs the live dashboard until the shutdown key.
func monitorCommand(cmd *cobra.Command, flags SourceFlags) error {
	cfg, path, err := loadConfig(cfgFile, flags)
	if err != nil {
		return err
	}
	if err := requireTerminal("monitor"); err != nil {
		return err
	}

	log, closer, err := openLog(cfg, "[monitor]")
	if err != nil {
		return err
	}
	defer closer.Close()
	if path != "" {
		log.Info("config loaded from %s", path)
	}

	opts, err := dashboardOptions(cfg, log)
	if err != nil {
		return err
	}

	screen, err := term.Open()
	if err != nil {
		return err
	}
	defer screen.Close()

	d, err := dashboard.New(screen, opts...)
	if err != nil {
		return err
	}

	m, err := monitor.New(screen, cfg, newSampler(cfg, log), monitorOptions(cfg, flags, log)...)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Attach(d); err != nil {
		return err
	}
	// A failed first sample is shown in the status field; keep running.
	if err := m.Refresh(); err != nil {
		log.Warn("first sample failed: %v", err)
	}
	return d.Run()
}
