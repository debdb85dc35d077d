package probe

import (
	"time"

	"github.com/rileyhilliard/statusboard/internal/logger"
)

type options struct {
	now      func() time.Time
	root     string
	timeout  time.Duration
	insecure bool
	log      logger.Logger
}

// Option configures a Sampler.
type Option func(*options)

// WithClock replaces time.Now for sample timestamps and rate calculation.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRoot reads <root>/proc instead of /proc, on the local machine or the
// remote host. Useful when the host /proc is mounted into a container.
func WithRoot(root string) Option {
	return func(o *options) { o.root = root }
}

// WithTimeout bounds connection setup for remote samplers.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithInsecureHostKey skips known_hosts verification for remote samplers.
func WithInsecureHostKey(insecure bool) Option {
	return func(o *options) { o.insecure = insecure }
}

// WithLogger sets the logger used for connection events.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(opts []Option) options {
	o := options{
		now:     time.Now,
		root:    "/",
		timeout: 10 * time.Second,
		log:     logger.Noop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
