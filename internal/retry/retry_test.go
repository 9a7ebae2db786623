package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"roundtable/internal/inference"
)

// recordDelays swaps the sleep function for one that records requested
// delays without waiting.
func recordDelays(p *Policy) *[]time.Duration {
	var delays []time.Duration
	p.WithSleep(func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	})
	return &delays
}

func TestDo_TransientExhaustsAttempts(t *testing.T) {
	policy := New(3, 4*time.Second, 60*time.Second, nil)
	delays := recordDelays(policy)

	attempts := 0
	_, err := policy.Do(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "", inference.NewTransient(429, "rate limited")
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", attempts)
	}
	// Final error propagates, not a wrapper.
	var ce *inference.CallError
	if !errors.As(err, &ce) || ce.Status != 429 {
		t.Fatalf("expected the final CallError to propagate, got %v", err)
	}
	// Two sleeps between three attempts: 4s then 8s, non-decreasing.
	if len(*delays) != 2 {
		t.Fatalf("expected 2 backoff delays, got %d", len(*delays))
	}
	for i := 1; i < len(*delays); i++ {
		if (*delays)[i] < (*delays)[i-1] {
			t.Fatalf("delays must be non-decreasing: %v", *delays)
		}
	}
	if (*delays)[0] != 4*time.Second || (*delays)[1] != 8*time.Second {
		t.Fatalf("expected 4s then 8s, got %v", *delays)
	}
}

func TestDo_DelaysCappedAtMax(t *testing.T) {
	policy := New(6, 4*time.Second, 20*time.Second, nil)
	delays := recordDelays(policy)

	_, _ = policy.Do(context.Background(), func(ctx context.Context) (string, error) {
		return "", inference.NewTransient(503, "unavailable")
	})
	// 4, 8, 16, 20, 20
	for _, d := range *delays {
		if d > 20*time.Second {
			t.Fatalf("delay %v exceeds max", d)
		}
	}
	last := (*delays)[len(*delays)-1]
	if last != 20*time.Second {
		t.Fatalf("expected final delay to hit the cap, got %v", last)
	}
}

func TestDo_PermanentShortCircuits(t *testing.T) {
	policy := New(3, time.Second, time.Minute, nil)
	delays := recordDelays(policy)

	attempts := 0
	_, err := policy.Do(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "", inference.NewPermanent(401, "bad credentials")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("permanent failure must be attempted exactly once, got %d attempts", attempts)
	}
	if len(*delays) != 0 {
		t.Fatalf("no backoff expected for permanent failure, got %v", *delays)
	}
}

func TestDo_UnclassifiedErrorNotRetried(t *testing.T) {
	policy := New(3, time.Second, time.Minute, nil)
	recordDelays(policy)

	attempts := 0
	_, err := policy.Do(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "", errors.New("some plain error")
	})
	if err == nil || attempts != 1 {
		t.Fatalf("unclassified errors are permanent: attempts=%d err=%v", attempts, err)
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	policy := New(3, time.Second, time.Minute, nil)
	recordDelays(policy)

	attempts := 0
	result, err := policy.Do(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", inference.NewTransient(500, "server error")
		}
		return "finally", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "finally" || attempts != 3 {
		t.Fatalf("expected success on third attempt, got %q after %d attempts", result, attempts)
	}
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	policy := New(3, 50*time.Millisecond, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := policy.Do(ctx, func(ctx context.Context) (string, error) {
		attempts++
		return "", inference.NewTransient(503, "unavailable")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt before cancellation, got %d", attempts)
	}
}

func TestDelay_Bounds(t *testing.T) {
	policy := New(5, 4*time.Second, 60*time.Second, nil)
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 4 * time.Second},
		{2, 8 * time.Second},
		{3, 16 * time.Second},
		{4, 32 * time.Second},
		{5, 60 * time.Second},
		{6, 60 * time.Second},
	}
	for _, tc := range cases {
		if got := policy.Delay(tc.attempt); got != tc.want {
			t.Fatalf("Delay(%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}
