package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wukong/internal/api"
	"wukong/internal/config"
	"wukong/pkg/logging"

	"github.com/avast/retry-go/v5"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Reliability guards outbound requests with a rate limiter, a circuit
// breaker and an optional retry loop. One instance is shared by all gateway
// handles so the limiter and breaker see every request.
type Reliability struct {
	limiter  *rate.Limiter
	cb       *gobreaker.CircuitBreaker
	attempts uint
}

// NewReliability builds the wrapper from gateway settings.
func NewReliability(cfg config.GatewayConfig) *Reliability {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "wukong-gateway",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Permission and auth failures say nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil || api.IsPermanent(err) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn("Gateway", "circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Reliability{
		limiter:  rate.NewLimiter(limit, burst),
		cb:       cb,
		attempts: attempts,
	}
}

// Do runs call under the limiter, breaker and retry policy. Permanent errors
// (see api.IsPermanent) are never retried.
func (r *Reliability) Do(ctx context.Context, name string, call func(ctx context.Context) error) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: rate limit: %w", name, err)
	}

	_, err := r.cb.Execute(func() (interface{}, error) {
		rt := retry.New(
			retry.Context(ctx),
			retry.Attempts(r.attempts),
			retry.LastErrorOnly(true),
			retry.RetryIf(func(err error) bool {
				return !api.IsPermanent(err)
			}),
			retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
				return retry.BackOffDelay(n, err, config)
			}),
		)
		return nil, rt.Do(func() error {
			return call(ctx)
		})
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: backend unavailable, retrying later: %w", name, err)
	}
	return err
}
