package nomurahome

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	embedder Embedder
	tuning   *SearchTuning
	cartTTL  time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the Redis connection. Multiple addresses enable
// cluster topology discovery.
func WithRedis(addrs []string, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = addrs
		c.password = password
	})
}

// WithEmbedder sets the text embedding provider. Without one the
// catalog, carts, and checkout work normally and search returns
// ErrEmbedderNotConfigured.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithCartTTL overrides how long an untouched cart survives.
// Default: 72 hours.
func WithCartTTL(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cartTTL = d
	})
}

// WithSearchTuning overrides the hybrid search score weights and cutoff.
func WithSearchTuning(t SearchTuning) Option {
	return optionFunc(func(c *clientConfig) {
		c.tuning = &t
	})
}

// WithLogger enables structured logging for engine operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithMetrics registers engine metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
