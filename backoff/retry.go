package backoff

import (
	"context"
	"time"
)

// Retryer drives a retry loop around a failing operation, consulting Next
// after each failure. It is the piece an outbound-call wrapper composes
// around its requests; the calculator itself stays pure.
type Retryer struct {
	policy  Policy
	timeout time.Duration
	onRetry func(attempt int, err error, delay time.Duration)
}

// RetryerOption configures a Retryer.
type RetryerOption func(*Retryer)

// WithAttemptTimeout bounds each individual attempt with its own deadline.
func WithAttemptTimeout(d time.Duration) RetryerOption {
	return func(r *Retryer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithOnRetry installs a hook called before each retry sleep.
func WithOnRetry(fn func(attempt int, err error, delay time.Duration)) RetryerOption {
	return func(r *Retryer) {
		r.onRetry = fn
	}
}

// NewRetryer creates a Retryer for the given policy. An invalid policy is a
// configuration error surfaced here rather than on every Execute call.
func NewRetryer(policy Policy, opts ...RetryerOption) (*Retryer, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	r := &Retryer{policy: policy}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Policy returns the retryer's policy.
func (r *Retryer) Policy() Policy {
	return r.policy
}

// Execute runs op, retrying failures per the policy. The operation runs at
// most MaxAttempts+1 times (the initial call plus MaxAttempts retries).
// Context cancellation interrupts both the operation's sleep between
// attempts and, when an attempt timeout is configured, the attempt itself.
// The last error is returned once retries are exhausted.
func (r *Retryer) Execute(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; ; attempt++ {
		err := r.attempt(ctx, op)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}

		decision, derr := Next(attempt, r.policy)
		if derr != nil {
			return derr
		}
		if !decision.Retry {
			return lastErr
		}

		if r.onRetry != nil {
			r.onRetry(attempt, err, decision.Delay)
		}

		timer := time.NewTimer(decision.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *Retryer) attempt(ctx context.Context, op func(context.Context) error) error {
	if r.timeout <= 0 {
		return op(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return op(ctx)
}
