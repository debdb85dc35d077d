// Package cli implements the statusboard command-line interface.
//
// The root command is "statusboard" with subcommands:
//
//	statusboard monitor   - Live dashboard on the current terminal
//	statusboard snapshot  - Sample once and print the rendered layout
//	statusboard demo      - Fields of several types updated by a counter
//	statusboard hello     - One window with a greeting
//	statusboard init      - Create .statusboard.yaml
//	statusboard version   - Print version information
//
// # Flag Handling
//
// --config and --verbose are defined on the root command and available to
// all subcommands. Source flags (--host, --interval, --no-outline) override
// the loaded config before it is validated, so a bad override is reported
// the same way as a bad config file.
//
// # Terminal Ownership
//
// While monitor, demo or hello run, the screen belongs to the dashboard.
// Logging goes to the config's log_file or nowhere; errors are printed only
// after the screen has been restored.
package cli
