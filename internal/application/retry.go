package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mock-interview/internal/domain"

	"github.com/sirupsen/logrus"
)

// Retry configuration constants
const (
	maxRetryAttempts  = 3
	initialDelay      = 1 * time.Second
	maxDelay          = 30 * time.Second
	backoffMultiplier = 2
)

// RetryDecision is the outcome of classifying one failed attempt.
type RetryDecision struct {
	Retry bool
	Delay time.Duration
}

// DecideRetry classifies the failure of the given 1-based attempt.
// Only transient provider errors are retried, at most maxRetryAttempts in
// total, waiting initialDelay*2^(attempt-1) unless the provider supplied a
// retry-after hint.
func DecideRetry(attempt int, err error) RetryDecision {
	var providerErr *domain.ProviderError
	if err == nil || !errors.As(err, &providerErr) || !providerErr.Transient {
		return RetryDecision{}
	}
	if attempt >= maxRetryAttempts {
		return RetryDecision{}
	}

	delay := initialDelay
	for i := 1; i < attempt; i++ {
		delay *= backoffMultiplier
	}
	if providerErr.RetryAfter > 0 {
		delay = providerErr.RetryAfter
	}
	if delay > maxDelay {
		delay = maxDelay
	}
	return RetryDecision{Retry: true, Delay: delay}
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the production Sleeper; the timer is released on cancellation.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type retrier struct {
	sleep Sleeper
}

// do runs call until it succeeds or DecideRetry says stop.
func (r retrier) do(ctx context.Context, operation string, call func(ctx context.Context) (string, error)) (string, error) {
	for attempt := 1; ; attempt++ {
		out, err := call(ctx)
		if err == nil {
			return out, nil
		}

		decision := DecideRetry(attempt, err)
		if !decision.Retry {
			if attempt > 1 {
				return "", fmt.Errorf("%s failed after %d attempts: %w", operation, attempt, err)
			}
			return "", fmt.Errorf("%s failed: %w", operation, err)
		}

		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"attempt":   attempt,
			"delay":     decision.Delay,
		}).Warnf("LLM call rate limited, retrying: %v", err)

		if err := r.sleep(ctx, decision.Delay); err != nil {
			return "", fmt.Errorf("%s cancelled during backoff: %w", operation, err)
		}
	}
}
