package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

// recordingSleeper is a virtual clock: it records requested sleeps and
// returns immediately.
type recordingSleeper struct {
	slept []time.Duration
	err   error
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.slept = append(r.slept, d)
	return nil
}

func TestPollUntilImmediateSuccess(t *testing.T) {
	sleeper := &recordingSleeper{}
	calls := 0
	err := pollUntil(context.Background(), PollConfig{Interval: 5 * time.Second, Attempts: 12}, sleeper.sleep,
		func(ctx context.Context) (bool, error) {
			calls++
			return true, nil
		})
	if err != nil {
		t.Fatalf("pollUntil: %v", err)
	}
	if calls != 1 {
		t.Fatalf("check calls: want=1 got=%d", calls)
	}
	if len(sleeper.slept) != 0 {
		t.Fatalf("sleeps: want=0 got=%d", len(sleeper.slept))
	}
}

func TestPollUntilSucceedsAfterRetries(t *testing.T) {
	sleeper := &recordingSleeper{}
	calls := 0
	err := pollUntil(context.Background(), PollConfig{Interval: 5 * time.Second, Attempts: 12}, sleeper.sleep,
		func(ctx context.Context) (bool, error) {
			calls++
			return calls >= 3, nil
		})
	if err != nil {
		t.Fatalf("pollUntil: %v", err)
	}
	if calls != 3 {
		t.Fatalf("check calls: want=3 got=%d", calls)
	}
	if len(sleeper.slept) != 2 {
		t.Fatalf("sleeps: want=2 got=%d", len(sleeper.slept))
	}
	for _, d := range sleeper.slept {
		if d != 5*time.Second {
			t.Fatalf("sleep interval: want=%v got=%v", 5*time.Second, d)
		}
	}
}

func TestPollUntilExhausted(t *testing.T) {
	sleeper := &recordingSleeper{}
	calls := 0
	err := pollUntil(context.Background(), PollConfig{Interval: 5 * time.Second, Attempts: 12}, sleeper.sleep,
		func(ctx context.Context) (bool, error) {
			calls++
			return false, nil
		})
	if !errors.Is(err, ErrPollExhausted) {
		t.Fatalf("expected ErrPollExhausted, got %v", err)
	}
	if calls != 12 {
		t.Fatalf("check calls: want=12 got=%d", calls)
	}
	if len(sleeper.slept) != 11 {
		t.Fatalf("sleeps: want=11 got=%d", len(sleeper.slept))
	}
}

func TestPollUntilCheckErrorAborts(t *testing.T) {
	sleeper := &recordingSleeper{}
	boom := errors.New("boom")
	calls := 0
	err := pollUntil(context.Background(), PollConfig{Interval: time.Second, Attempts: 12}, sleeper.sleep,
		func(ctx context.Context) (bool, error) {
			calls++
			return false, boom
		})
	if !errors.Is(err, boom) {
		t.Fatalf("expected check error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("check calls: want=1 got=%d", calls)
	}
}

func TestPollUntilSleepErrorAborts(t *testing.T) {
	sleeper := &recordingSleeper{err: context.Canceled}
	err := pollUntil(context.Background(), PollConfig{Interval: time.Second, Attempts: 12}, sleeper.sleep,
		func(ctx context.Context) (bool, error) {
			return false, nil
		})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPollConfigBudget(t *testing.T) {
	cfg := PollConfig{Interval: 5 * time.Second, Attempts: 12}
	if got := cfg.Budget(); got != 60*time.Second {
		t.Fatalf("budget: want=%v got=%v", 60*time.Second, got)
	}
}
