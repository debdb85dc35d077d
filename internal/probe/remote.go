package probe

import (
	"context"
	"path"
	"strings"
	"sync"

	"github.com/rileyhilliard/statusboard/internal/util"
	"github.com/rileyhilliard/statusboard/pkg/sshutil"
)

// remoteCommand prints every section a sample needs, separated by
// SectionSeparator lines, in one SSH exec. The /proc files are read below
// root.
func remoteCommand(root string) string {
	steps := make([]string, 0, sectionCount)
	for i, rel := range procFiles {
		step := "cat " + util.ShellQuote(path.Join(root, rel))
		if i == sectionUptime {
			step += " 2>/dev/null || true"
		}
		steps = append(steps, step)
	}
	steps = append(steps, "hostname 2>/dev/null || true")
	return strings.Join(steps, `; echo "`+SectionSeparator+`"; `)
}

// runner executes a command on the remote host.
type runner interface {
	Output(ctx context.Context, cmd string) (string, error)
	Close() error
}

// dialFunc opens a runner for host.
type dialFunc func(host string, opts options) (runner, error)

func dialSSH(host string, opts options) (runner, error) {
	return sshutil.Dial(host, sshutil.DialOptions{
		Timeout:               opts.timeout,
		InsecureIgnoreHostKey: opts.insecure,
		Log:                   opts.log,
	})
}

// Remote samples a host over SSH. The connection is opened on the first
// Sample and reopened after a failed one.
type Remote struct {
	host string
	opts options
	dial dialFunc

	mu      sync.Mutex
	conn    runner
	tracker deltaTracker
}

// NewRemote creates a sampler for host, an ssh_config alias or
// [user@]hostname[:port].
func NewRemote(host string, opts ...Option) *Remote {
	return &Remote{host: host, opts: buildOptions(opts), dial: dialSSH}
}

// Host returns the host the sampler was created for.
func (r *Remote) Host() string { return r.host }

// Sample runs the batched /proc command and parses its output.
func (r *Remote) Sample(ctx context.Context) (*Sample, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		conn, err := r.dial(r.host, r.opts)
		if err != nil {
			return nil, err
		}
		r.opts.log.Debug("connected to %s", r.host)
		r.conn = conn
	}

	out, err := r.conn.Output(ctx, remoteCommand(r.opts.root))
	if err != nil {
		r.opts.log.Warn("sampling %s failed, dropping connection: %v", r.host, err)
		_ = r.conn.Close()
		r.conn = nil
		return nil, err
	}
	return r.tracker.buildSample(r.host, r.opts.now(), splitSections(out))
}

// Close drops the SSH connection.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	r.conn = nil
	return err
}
