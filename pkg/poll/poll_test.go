package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func noSleep(calls *int) SleepFunc {
	return func(_ context.Context, _ time.Duration) error {
		*calls++
		return nil
	}
}

func TestUntilReturnsFirstNonZero(t *testing.T) {
	t.Parallel()

	var sleeps int
	p := New(time.Second, time.Second, WithSleepFunc(noSleep(&sleeps)))

	reads := 0
	values := []uint64{0, 0, 5, 7}

	got, err := Until(context.Background(), p, func(_ context.Context) (uint64, bool, error) {
		v := values[reads]
		reads++
		return v, v != 0, nil
	})

	require.NoError(t, err)
	require.Equal(t, uint64(5), got)
	require.Equal(t, 3, reads, "no reads should happen after the first non-zero observation")
	require.Equal(t, 2, sleeps)
}

func TestUntilMaxAttempts(t *testing.T) {
	t.Parallel()

	var sleeps int
	p := New(time.Second, time.Second, WithSleepFunc(noSleep(&sleeps)), WithMaxAttempts(3))

	reads := 0
	_, err := Until(context.Background(), p, func(_ context.Context) (int, bool, error) {
		reads++
		return 0, false, nil
	})

	require.ErrorIs(t, err, ErrMaxAttempts)
	require.Equal(t, 3, reads)
}

func TestUntilReadErrorNotRetried(t *testing.T) {
	t.Parallel()

	var sleeps int
	p := New(time.Second, time.Second, WithSleepFunc(noSleep(&sleeps)))

	errRead := errors.New("rpc unreachable")
	reads := 0
	_, err := Until(context.Background(), p, func(_ context.Context) (int, bool, error) {
		reads++
		return 0, false, errRead
	})

	require.ErrorIs(t, err, errRead)
	require.Equal(t, 1, reads)
	require.Zero(t, sleeps)
}

func TestUntilContextCancelled(t *testing.T) {
	t.Parallel()

	p := New(time.Millisecond, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Until(ctx, p, func(_ context.Context) (int, bool, error) {
		return 0, false, nil
	})

	require.ErrorIs(t, err, context.Canceled)
}

func TestIntervalWithinRange(t *testing.T) {
	t.Parallel()

	p := New(15*time.Second, 30*time.Second)
	for i := 0; i < 100; i++ {
		d := p.interval()
		require.GreaterOrEqual(t, d, 15*time.Second)
		require.LessOrEqual(t, d, 30*time.Second)
	}
}
