package transport

import "github.com/bft-labs/lspwire/pkg/log"

// Option configures optional behavior of a Transport.
type Option func(*options)

type options struct {
	logger  log.Logger
	bufSize int
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets the logger used for per-frame debug output and failures.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBuffer keeps one frame buffer of the given capacity and reuses it for
// every frame that fits. Larger frames are built in a one-off allocation.
func WithBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufSize = size
		}
	}
}
