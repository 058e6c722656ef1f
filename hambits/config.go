package hambits

import (
	"errors"
	"fmt"
	"time"

	"github.com/hambits/go-rotor/logger"
)

// Defaults matching the controller's advertised capabilities.
const (
	// DefaultTimeout is the per-attempt reply timeout.
	DefaultTimeout = 400 * time.Millisecond
	// DefaultRetryLimit is the transaction attempt budget: a transaction
	// fails with a timeout after this many consecutive timed-out reads.
	DefaultRetryLimit = 5
	// DefaultBaud is the controller's fixed line rate.
	DefaultBaud = 19200
)

// Configurable ranges.
const (
	MinTimeout = 50 * time.Millisecond
	MaxTimeout = 10 * time.Second

	MaxRetryLimit = 15
)

// Config holds the tunable parameters of a Driver.
type Config struct {
	timeout    time.Duration
	retryLimit int
	logger     logger.Logger
}

// NewConfig creates a driver configuration with the given options applied
// in order.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		timeout:    DefaultTimeout,
		retryLimit: DefaultRetryLimit,
		logger:     logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Timeout returns the per-attempt reply timeout.
func (cfg *Config) Timeout() time.Duration { return cfg.timeout }

// RetryLimit returns the transaction attempt budget.
func (cfg *Config) RetryLimit() int { return cfg.retryLimit }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// --- Option ---

// Option is a functional option for configuring a Driver.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithTimeout sets the per-attempt reply timeout.
func WithTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < MinTimeout || d > MaxTimeout {
			return fmt.Errorf("hambits: timeout %v out of range [%v, %v]", d, MinTimeout, MaxTimeout)
		}
		cfg.timeout = d

		return nil
	})
}

// WithRetryLimit sets the transaction attempt budget.
func WithRetryLimit(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < 1 || n > MaxRetryLimit {
			return fmt.Errorf("hambits: retry limit %d out of range [1, %d]", n, MaxRetryLimit)
		}
		cfg.retryLimit = n

		return nil
	})
}

// WithLogger sets the logger for the driver.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("hambits: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
