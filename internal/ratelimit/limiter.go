// Package ratelimit throttles calls to the catalog API with one token bucket per endpoint.
package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

const (
	EndpointList   = "list"
	EndpointCreate = "create"
)

// Rate is the refill rate and burst of one bucket.
type Rate struct {
	RequestsPerSecond float64
	BurstSize         int
}

// Config holds the shared default and any per-endpoint overrides.
type Config struct {
	Default     Rate
	PerEndpoint map[string]Rate
}

// DefaultConfig keeps creates on a tighter bucket than list queries.
func DefaultConfig() Config {
	return Config{
		Default: Rate{RequestsPerSecond: 10, BurstSize: 20},
		PerEndpoint: map[string]Rate{
			EndpointCreate: {RequestsPerSecond: 2, BurstSize: 5},
		},
	}
}

func (c Config) Validate() error {
	if err := c.Default.validate(); err != nil {
		return fmt.Errorf("default: %w", err)
	}
	for endpoint, r := range c.PerEndpoint {
		if err := r.validate(); err != nil {
			return fmt.Errorf("%s: %w", endpoint, err)
		}
	}
	return nil
}

func (r Rate) validate() error {
	if r.RequestsPerSecond <= 0 || r.BurstSize <= 0 {
		return fmt.Errorf("rps and burst must be positive, got %g/%d", r.RequestsPerSecond, r.BurstSize)
	}
	return nil
}

// EndpointLimiter keeps one token bucket per remote endpoint, created on first use.
type EndpointLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	config   Config
}

func NewEndpointLimiter(config Config) *EndpointLimiter {
	return &EndpointLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   config,
	}
}

func NewEndpointLimiterWithDefaults() *EndpointLimiter {
	return NewEndpointLimiter(DefaultConfig())
}

func (l *EndpointLimiter) rateFor(endpoint string) Rate {
	if r, ok := l.config.PerEndpoint[endpoint]; ok {
		return r
	}
	return l.config.Default
}

func (l *EndpointLimiter) Limiter(endpoint string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[endpoint]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[endpoint]; exists {
		return limiter
	}

	r := l.rateFor(endpoint)
	limiter = rate.NewLimiter(rate.Limit(r.RequestsPerSecond), r.BurstSize)
	l.limiters[endpoint] = limiter
	return limiter
}

// Wait blocks until the endpoint's bucket has a token or ctx is done. A nil limiter never blocks.
func (l *EndpointLimiter) Wait(ctx context.Context, endpoint string) error {
	if l == nil {
		return nil
	}
	if err := l.Limiter(endpoint).Wait(ctx); err != nil {
		return fmt.Errorf("rate limit %s: %w", endpoint, err)
	}
	return nil
}
