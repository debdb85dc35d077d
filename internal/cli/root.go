package cli

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "statusboard",
	Short: "Live text-mode status dashboard",
	Long: `statusboard draws windows of named fields on your terminal and keeps
them updated with host metrics, read locally from /proc or over SSH.

Fields change color as their values cross configured thresholds.
Run 'statusboard init' to write a layout you can edit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetDefault(logger.New(cmd.ErrOrStderr(), "[statusboard]", true))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./.statusboard.yaml, then ~/.config/statusboard/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging (to stderr, or log_file while a dashboard runs)")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError(err))
		os.Exit(1)
	}
}
