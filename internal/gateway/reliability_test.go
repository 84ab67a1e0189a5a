package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"wukong/internal/api"
	"wukong/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReliabilityRetries(t *testing.T) {
	tests := []struct {
		name      string
		attempts  uint
		err       error
		wantCalls int
	}{
		{name: "single attempt by default", attempts: 0, err: errors.New("boom"), wantCalls: 1},
		{name: "transient errors retry", attempts: 3, err: errors.New("boom"), wantCalls: 3},
		{name: "permanent errors do not retry", attempts: 3, err: fmt.Errorf("x: %w", api.ErrPermissionDenied), wantCalls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel := NewReliability(config.GatewayConfig{RetryAttempts: tt.attempts, BreakerFailures: 100})
			calls := 0
			err := rel.Do(context.Background(), "test", func(context.Context) error {
				calls++
				return tt.err
			})
			require.Error(t, err)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestReliabilitySucceedsAfterRetry(t *testing.T) {
	rel := NewReliability(config.GatewayConfig{RetryAttempts: 3})
	calls := 0
	err := rel.Do(context.Background(), "test", func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("flaky")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestReliabilityBreakerOpens(t *testing.T) {
	rel := NewReliability(config.GatewayConfig{BreakerFailures: 2, BreakerCooldown: time.Minute})
	fail := func(context.Context) error { return errors.New("down") }

	for i := 0; i < 2; i++ {
		require.Error(t, rel.Do(context.Background(), "test", fail))
	}

	called := false
	err := rel.Do(context.Background(), "test", func(context.Context) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")
	assert.False(t, called)
}

func TestReliabilityPermanentErrorsKeepBreakerClosed(t *testing.T) {
	rel := NewReliability(config.GatewayConfig{BreakerFailures: 1, BreakerCooldown: time.Minute})
	denied := func(context.Context) error { return api.ErrPermissionDenied }

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, rel.Do(context.Background(), "test", denied), api.ErrPermissionDenied)
	}
	assert.NoError(t, rel.Do(context.Background(), "test", func(context.Context) error { return nil }))
}

func TestReliabilityCancelledContext(t *testing.T) {
	rel := NewReliability(config.GatewayConfig{RateLimit: 0.001, Burst: 1})
	require.NoError(t, rel.Do(context.Background(), "test", func(context.Context) error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := rel.Do(ctx, "test", func(context.Context) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
