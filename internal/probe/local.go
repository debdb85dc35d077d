package probe

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/statusboard/internal/errors"
)

// procFiles are read in section order.
var procFiles = [...]string{
	sectionStat:    "proc/stat",
	sectionLoadavg: "proc/loadavg",
	sectionMeminfo: "proc/meminfo",
	sectionNetDev:  "proc/net/dev",
	sectionUptime:  "proc/uptime",
}

// Local samples the machine statusboard runs on.
type Local struct {
	opts    options
	tracker deltaTracker
}

// NewLocal creates a sampler for the local host.
func NewLocal(opts ...Option) *Local {
	return &Local{opts: buildOptions(opts)}
}

// Sample reads the /proc files and the hostname.
func (l *Local) Sample(ctx context.Context) (*Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sections := make([]string, sectionCount)
	for i, rel := range procFiles {
		data, err := os.ReadFile(filepath.Join(l.opts.root, rel))
		if err != nil {
			if i == sectionUptime {
				continue
			}
			return nil, errors.WrapWithCode(err, errors.ErrProbe,
				"Couldn't read local metrics",
				"statusboard reads /proc; run it on Linux or use --host")
		}
		sections[i] = string(data)
	}

	host := "localhost"
	if name, err := os.Hostname(); err == nil && name != "" {
		host = name
	}
	return l.tracker.buildSample(host, l.opts.now(), sections)
}

// Close is a no-op for local samplers.
func (l *Local) Close() error { return nil }

// New returns a Local sampler when host is empty or "localhost" and a Remote
// one otherwise.
func New(host string, opts ...Option) Sampler {
	if host == "" || host == "localhost" {
		return NewLocal(opts...)
	}
	return NewRemote(host, opts...)
}
