package server

import (
	"fmt"
	"time"
)

// Config holds HTTP server configuration
type Config struct {
	Addr           string        // Listen address
	RequestTimeout time.Duration // Deadline of one sequencing request (0 = none)
	RatePerSecond  float64       // Sustained requests per second (0 = unlimited)
	Burst          int           // Requests allowed above the sustained rate
	MaxConns       int           // Concurrent connections accepted (0 = unlimited)
	CacheDSN       string        // SQLite DSN of the response cache ("" = in-memory)
	DisableCache   bool
	TimingRepeat   int           // Runs per sequencer on the timed_executions endpoint
	TimingTimeout  time.Duration // Deadline of each run on the timed_executions endpoint
}

// DefaultConfig returns the configuration used by "pepseq serve".
func DefaultConfig() Config {
	return Config{
		Addr:           ":8000",
		RequestTimeout: 60 * time.Second,
		RatePerSecond:  5,
		Burst:          10,
		MaxConns:       64,
		TimingRepeat:   1,
		TimingTimeout:  30 * time.Second,
	}
}

// Validate checks configuration ranges.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.RequestTimeout < 0 || c.TimingTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.RatePerSecond < 0 {
		return fmt.Errorf("rate must not be negative, got %g", c.RatePerSecond)
	}
	if c.RatePerSecond > 0 && c.Burst < 1 {
		return fmt.Errorf("burst must be positive when rate limiting, got %d", c.Burst)
	}
	if c.MaxConns < 0 {
		return fmt.Errorf("max connections must not be negative, got %d", c.MaxConns)
	}
	return nil
}

// timeoutFor returns the request deadline of endpoint (0 = none). The timed
// endpoint runs four sequencers TimingRepeat times each, so its deadline
// covers every run reaching TimingTimeout.
func (c Config) timeoutFor(endpoint string) time.Duration {
	if endpoint != EndpointTimedExecutions || c.RequestTimeout == 0 || c.TimingTimeout == 0 {
		return c.RequestTimeout
	}
	repeat := c.TimingRepeat
	if repeat < 1 {
		repeat = 1
	}
	budget := 4 * time.Duration(repeat) * c.TimingTimeout
	if budget > c.RequestTimeout {
		return budget
	}
	return c.RequestTimeout
}
