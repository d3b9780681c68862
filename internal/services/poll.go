package services

import (
	"context"
	"errors"
	"time"
)

// ErrPollExhausted is returned when the attempt budget ran out before the
// condition was observed.
var ErrPollExhausted = errors.New("poll attempt budget exhausted")

type PollConfig struct {
	Interval time.Duration
	Attempts int
}

// Budget is the total wall-clock time the poll may span.
func (p PollConfig) Budget() time.Duration {
	return time.Duration(p.Attempts) * p.Interval
}

// SleepFunc waits for d or until ctx is done. Tests inject a recording
// implementation so poll loops run against a virtual clock.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// pollUntil invokes check up to cfg.Attempts times, sleeping cfg.Interval
// between attempts. check reports done=true to stop; any error aborts the
// loop immediately.
func pollUntil(ctx context.Context, cfg PollConfig, sleep SleepFunc, check func(ctx context.Context) (bool, error)) error {
	if sleep == nil {
		sleep = sleepContext
	}
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if i == attempts-1 {
			break
		}
		if err := sleep(ctx, cfg.Interval); err != nil {
			return err
		}
	}
	return ErrPollExhausted
}
