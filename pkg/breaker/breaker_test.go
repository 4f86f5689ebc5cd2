package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func fail(context.Context) error    { return errBoom }
func succeed(context.Context) error { return nil }

func TestBreaker_OpensAndRecovers(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := New("renderer", 2, time.Minute)
	b.now = func() time.Time { return clock }

	ctx := context.Background()
	assert.ErrorIs(t, b.Call(ctx, fail), errBoom)
	assert.Equal(t, StateClosed, b.State())
	assert.ErrorIs(t, b.Call(ctx, fail), errBoom)
	assert.Equal(t, StateOpen, b.State())

	calls := 0
	err := b.Call(ctx, func(context.Context) error { calls++; return nil })
	require.ErrorIs(t, err, ErrOpen)
	assert.Zero(t, calls)

	clock = clock.Add(time.Minute)
	require.NoError(t, b.Call(ctx, succeed))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := New("renderer", 1, time.Second)
	b.now = func() time.Time { return clock }

	ctx := context.Background()
	_ = b.Call(ctx, fail)
	require.Equal(t, StateOpen, b.State())

	clock = clock.Add(time.Second)
	assert.ErrorIs(t, b.Call(ctx, fail), errBoom)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Call(ctx, succeed), ErrOpen)
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b := New("renderer", 2, time.Minute)
	ctx := context.Background()

	_ = b.Call(ctx, fail)
	require.NoError(t, b.Call(ctx, succeed))
	_ = b.Call(ctx, fail)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_CancelledCallerIsNotAFailure(t *testing.T) {
	b := New("renderer", 1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Call(ctx, func(ctx context.Context) error { return ctx.Err() })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, b.State())
}
