package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/statusboard/internal/config"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/ui"
	"github.com/rileyhilliard/statusboard/pkg/sshutil"
)

// connectTimeout bounds the connection test init runs before saving.
const connectTimeout = 10 * time.Second

// localChoice is the host picker entry for sampling this machine.
const localChoice = "local machine"

// otherChoice lets the user type a host that isn't in ~/.ssh/config.
const otherChoice = "other..."

// InitOptions holds options for the init command.
type InitOptions struct {
	Host           string // Pre-specified SSH host/alias, "localhost" for local
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
	Out            io.Writer
}

// Init creates a new .statusboard.yaml in the current directory.
func Init(opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	configPath := filepath.Join(".", config.ConfigFileName)

	_, statErr := os.Stat(configPath)
	exists := statErr == nil

	// Only the source changes; the layout and comments stay.
	if exists && opts.Host != "" && !opts.Overwrite {
		host := normalizeHost(opts.Host)
		if err := config.SetSourceHost(configPath, host); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't update "+config.ConfigFileName,
				"Check the file is valid YAML, or use --force to replace it")
		}
		fmt.Fprintf(out, "%s Set source.host to %s in %s\n", ui.SymbolSuccess, describeHost(host), config.ConfigFileName)
		return nil
	}

	if exists && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite, or --host to change only the source")
		}
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	host := normalizeHost(opts.Host)
	if opts.Host == "" && !opts.NonInteractive {
		picked, err := pickHost()
		if err != nil {
			return err
		}
		host = picked
	}

	cfg := config.DefaultConfig()
	cfg.Source.Host = host

	if host != "" {
		ok, err := testConnection(cfg, out, opts.NonInteractive)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := config.Save(configPath, cfg, true); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+config.ConfigFileName,
			"Check you have write permission in this directory")
	}

	fmt.Fprintf(out, "%s Created %s sampling %s\n\n", ui.SymbolSuccess, config.ConfigFileName, describeHost(host))
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  statusboard snapshot   # print one frame")
	fmt.Fprintln(out, "  statusboard monitor    # live dashboard")
	return nil
}

// normalizeHost maps the local aliases onto the empty host.
func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "localhost" {
		return ""
	}
	return host
}

func describeHost(host string) string {
	if host == "" {
		return "the local machine"
	}
	return host
}

// pickHost offers the hosts from ~/.ssh/config, the local machine and a free
// text entry.
func pickHost() (string, error) {
	entries, err := sshutil.ConfiguredHosts()
	if err != nil {
		logger.Default().Warn("couldn't read ~/.ssh/config: %v", err)
	}

	options := []huh.Option[string]{huh.NewOption(localChoice, localChoice)}
	for _, e := range entries {
		label := e.Alias
		if desc := e.Description(); desc != e.Alias {
			label += " (" + desc + ")"
		}
		options = append(options, huh.NewOption(label, e.Alias))
	}
	options = append(options, huh.NewOption(otherChoice, otherChoice))

	choice := localChoice
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should metrics come from?").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}

	switch choice {
	case localChoice:
		return "", nil
	case otherChoice:
	default:
		return choice, nil
	}

	var typed string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("SSH host or alias").
				Description("Enter hostname, user@host[:port], or SSH config alias").
				Placeholder("myserver or user@192.168.1.100").
				Value(&typed).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("SSH host is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	return normalizeHost(typed), nil
}

// testConnection samples the host once. It reports whether to go on saving:
// after a failure an interactive user may keep the config anyway.
func testConnection(cfg *config.Config, out io.Writer, nonInteractive bool) (bool, error) {
	host := cfg.Source.Host
	fmt.Fprintln(out)
	spinner := ui.NewSpinner("Testing connection to " + host)
	spinner.SetOutput(out)
	spinner.Start()

	sampler := newSampler(cfg, logger.Default())
	defer sampler.Close()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	_, err := sampler.Sample(ctx)
	if err == nil {
		spinner.Success()
		fmt.Fprintln(out)
		return true, nil
	}
	spinner.Fail()

	failed := errors.WrapWithCode(err, errors.ErrSSH,
		fmt.Sprintf("Connection to '%s' failed", host),
		"Check that the host is reachable: ssh "+host)
	if nonInteractive {
		return false, failed
	}

	fmt.Fprintf(out, "\n%s Connection to '%s' failed: %v\n\n", ui.SymbolFail, host, summary(err))
	var saveAnyway bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save config anyway? (You can fix the connection later)").
				Value(&saveAnyway),
		),
	)
	if formErr := form.Run(); formErr != nil {
		return false, failed
	}
	return saveAnyway, nil
}

// summary is the headline of err, without the cause and suggestion lines.
func summary(err error) string {
	var sbErr *errors.Error
	msg := err.Error()
	if stderrors.As(err, &sbErr) {
		msg = sbErr.Message
	}
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}
