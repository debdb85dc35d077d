package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	monitorFlags       SourceFlags
	snapshotFlags      SourceFlags
	snapshotNoColor    bool
	snapshotSettle     time.Duration
	snapshotSize       string
	demoInterval       time.Duration
	initHostFlag       string
	initForce          bool
	initNonInteractive bool
)

// monitorCmd starts the live dashboard
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live dashboard of host metrics",
	Long: `Draw the configured windows on this terminal and refresh their fields
every interval from the local machine or an SSH host.

Keys:
  r        sample now
  p/space  pause or resume sampling
  ctrl+l   redraw
  F1       exit (shutdown_key in the config)

Examples:
  statusboard monitor
  statusboard monitor --host web-1 --interval 2s
  statusboard monitor --config ./boards/db.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd, monitorFlags)
	},
}

// snapshotCmd samples once and prints the layout
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one rendered frame of the dashboard",
	Long: `Sample the configured source, render every window to an in-memory
screen and print it. Works without a TTY, so it can be piped or logged.

CPU usage and network rates need two samples; snapshot waits --settle
between them.

Examples:
  statusboard snapshot
  statusboard snapshot --host web-1 --no-color > web-1.txt
  statusboard snapshot --size 100x30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(cmd, snapshotOptions{
			flags:   snapshotFlags,
			noColor: snapshotNoColor,
			settle:  snapshotSettle,
			size:    snapshotSize,
		})
	},
}

// demoCmd runs the field type demo
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show string, int32 and hex uint32 fields counting up",
	Long: `Open a window with three fields of different types and update them
from a counter on every tick. Press F1 to exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return demoCommand(demoInterval)
	},
}

// helloCmd shows a single greeting window
var helloCmd = &cobra.Command{
	Use:   "hello",
	Short: "Show a hello-world window",
	Long:  `Open one outlined window with a greeting. Press F1 to exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return helloCommand()
	},
}

// initCmd creates a new .statusboard.yaml
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .statusboard.yaml configuration",
	Long: `Write a .statusboard.yaml in the current directory with the default
layout. Prompts for the metric source, offering the hosts in ~/.ssh/config.

With --host and an existing config, only source.host is changed and the
rest of the file, comments included, is kept.

Examples:
  statusboard init
  statusboard init --host web-1
  statusboard init --force --non-interactive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{
			Host:           initHostFlag,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
			Out:            cmd.OutOrStdout(),
		})
	},
}

func init() {
	AddSourceFlags(monitorCmd, &monitorFlags)

	AddSourceFlags(snapshotCmd, &snapshotFlags)
	snapshotCmd.Flags().BoolVar(&snapshotNoColor, "no-color", false, "print plain text without ANSI colors")
	snapshotCmd.Flags().DurationVar(&snapshotSettle, "settle", time.Second, "wait between the priming and the reported sample")
	snapshotCmd.Flags().StringVar(&snapshotSize, "size", "80x24", "screen size as WIDTHxHEIGHT")

	demoCmd.Flags().DurationVar(&demoInterval, "interval", time.Second, "counter interval")

	initCmd.Flags().StringVar(&initHostFlag, "host", "", "pre-specify the SSH host to sample")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and use defaults")

	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(helloCmd)
	rootCmd.AddCommand(initCmd)
}
