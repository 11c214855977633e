// Package poll provides a blocking retry loop with randomized pacing between
// attempts. It backs both the deposit wait on the destination chain and the
// gas price gate on the source chain.
package poll

import (
	"context"
	"errors"
	mathrand "math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrMaxAttempts is returned when a bounded poller runs out of attempts.
var ErrMaxAttempts = errors.New("poll: max attempts reached")

// SleepFunc blocks for the given duration or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Poller struct {
	minInterval time.Duration
	maxInterval time.Duration
	maxAttempts int // 0 means unbounded
	sleep       SleepFunc
}

type Option func(*Poller)

// WithMaxAttempts bounds the loop; n <= 0 keeps it unbounded.
func WithMaxAttempts(n int) Option {
	return func(p *Poller) {
		p.maxAttempts = n
	}
}

// WithSleepFunc replaces the real sleep, letting tests run the loop
// without wall-clock delays.
func WithSleepFunc(fn SleepFunc) Option {
	return func(p *Poller) {
		p.sleep = fn
	}
}

func New(minInterval, maxInterval time.Duration, opts ...Option) *Poller {
	if maxInterval < minInterval {
		maxInterval = minInterval
	}
	p := &Poller{
		minInterval: minInterval,
		maxInterval: maxInterval,
		sleep:       defaultSleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Until invokes fn until it reports done, the context is cancelled, the
// attempt bound is hit, or fn fails. Read errors are not retried: the
// caller decides whether a failed read is tolerable before returning it.
// No further reads happen once fn reports done.
func Until[T any](ctx context.Context, p *Poller, fn func(context.Context) (T, bool, error)) (T, error) {
	var zero T
	for attempt := 1; ; attempt++ {
		res, done, err := fn(ctx)
		if err != nil {
			return zero, err
		}
		if done {
			return res, nil
		}
		if p.maxAttempts > 0 && attempt >= p.maxAttempts {
			return zero, ErrMaxAttempts
		}
		if err := p.sleep(ctx, p.interval()); err != nil {
			return zero, err
		}
	}
}

func (p *Poller) interval() time.Duration {
	if p.maxInterval == p.minInterval {
		return p.minInterval
	}
	return p.minInterval + time.Duration(mathrand.Int63n(int64(p.maxInterval-p.minInterval)+1))
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	log.Debug().Msgf("delay for %d sec", int(d.Seconds()))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
