package spectrum

import "github.com/cwbudde/algo-thdn/diag"

type config struct {
	backend  Backend
	observer diag.Observer
}

// Option configures Analyze.
type Option func(*config)

// WithBackend selects the FFT backend. A nil backend keeps the default.
func WithBackend(b Backend) Option {
	return func(c *config) {
		if b != nil {
			c.backend = b
		}
	}
}

// WithBackendKind selects one of the built-in FFT backends. Unknown kinds
// are ignored.
func WithBackendKind(k BackendKind) Option {
	return func(c *config) {
		if b, err := NewBackend(k); err == nil {
			c.backend = b
		}
	}
}

// WithObserver routes diagnostic events to o.
func WithObserver(o diag.Observer) Option {
	return func(c *config) {
		c.observer = diag.OrNop(o)
	}
}

func applyOptions(opts []Option) config {
	cfg := config{backend: autoBackend{}, observer: diag.Nop}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
