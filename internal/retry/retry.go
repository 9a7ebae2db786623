// Package retry implements bounded exponential backoff around fallible
// inference calls. The policy retries only failures classified as transient;
// permanent failures short-circuit on the first attempt.
package retry

import (
	"context"
	"time"

	"go.uber.org/zap"

	"roundtable/internal/inference"
	"roundtable/internal/logging"
)

// Policy wraps an operation with bounded exponential backoff.
// The zero value is unusable; use New or fill all bounds.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration

	logger *zap.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// New builds a policy with the given bounds. maxAttempts counts total tries,
// not re-tries: maxAttempts=3 means at most three invocations.
func New(maxAttempts int, initialDelay, maxDelay time.Duration, logger *zap.Logger) *Policy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Policy{
		MaxAttempts:  maxAttempts,
		InitialDelay: initialDelay,
		MaxDelay:     maxDelay,
		logger:       logging.OrNop(logger),
		sleep:        sleepCtx,
	}
}

// WithSleep replaces the sleep function. Tests use this to record delays
// instead of waiting them out.
func (p *Policy) WithSleep(sleep func(ctx context.Context, d time.Duration) error) *Policy {
	p.sleep = sleep
	return p
}

// Delay returns the backoff before the given retry (attempt is 1-based and
// names the attempt that just failed): min(initial * 2^(attempt-1), max).
func (p *Policy) Delay(attempt int) time.Duration {
	d := p.InitialDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// Do runs op until it succeeds, fails permanently, or the attempt bound is
// exhausted. The final error is propagated to the caller unchanged.
func (p *Policy) Do(ctx context.Context, op func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !inference.IsTransient(err) {
			p.logger.Debug("permanent failure, not retrying", zap.Int("attempt", attempt), zap.Error(err))
			return "", err
		}
		if attempt == p.MaxAttempts {
			break
		}

		delay := p.Delay(attempt)
		p.logger.Info("transient failure, backing off",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.MaxAttempts),
			zap.Duration("delay", delay),
			zap.Error(err))
		if err := p.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
	return "", lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
