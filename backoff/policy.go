package backoff

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Policy describes an exponential backoff schedule. It is immutable,
// owned by the caller, and never modified by this package.
type Policy struct {
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// Multiplier grows the delay between successive attempts. Must be
	// greater than 1.
	Multiplier float64

	// MaxDelay caps the computed delay.
	MaxDelay time.Duration

	// MaxAttempts is the number of retries permitted. Zero means never
	// retry.
	MaxAttempts int

	// Jitter, when set, draws the final delay uniformly from [0, d]
	// instead of returning d itself. Jitter spreads retries from many
	// callers so they do not synchronize into retry storms.
	Jitter bool
}

// Validate checks the policy's invariants.
func (p Policy) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BaseDelay, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&p.Multiplier, validation.Required, validation.Min(1.0).Exclusive()),
		validation.Field(&p.MaxDelay, validation.Required, validation.Min(p.BaseDelay)),
		validation.Field(&p.MaxAttempts, validation.Min(0)),
	)
}

// Decision is the outcome of evaluating a Policy against an attempt count.
type Decision struct {
	// Retry reports whether the caller should try again.
	Retry bool

	// Delay is how long to wait before the next attempt. Meaningful only
	// when Retry is true.
	Delay time.Duration
}

// Next decides whether a failed operation should be retried and, if so,
// after what delay. attempt is 1-based: pass 1 after the first failure.
//
// The raw delay is min(MaxDelay, BaseDelay * Multiplier^(attempt-1)); with
// Jitter the returned delay is drawn uniformly from [0, raw]. Without
// jitter the delay sequence is non-decreasing until it saturates at
// MaxDelay.
//
// Next is a pure function: it retains no state, performs no I/O, and is
// safe to call concurrently. attempt < 1 is a caller contract violation
// and is rejected, not clamped.
func Next(attempt int, policy Policy) (Decision, error) {
	if attempt < 1 {
		return Decision{}, fmt.Errorf("%w: attempt %d", ErrInvalidAttempt, attempt)
	}
	if err := policy.Validate(); err != nil {
		return Decision{}, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	if attempt > policy.MaxAttempts {
		return Decision{Retry: false}, nil
	}

	return Decision{Retry: true, Delay: delayFor(attempt, policy)}, nil
}

// delayFor computes the capped, optionally jittered delay for an attempt.
func delayFor(attempt int, policy Policy) time.Duration {
	raw := float64(policy.BaseDelay) * math.Pow(policy.Multiplier, float64(attempt-1))

	delay := policy.MaxDelay
	if raw < float64(policy.MaxDelay) {
		delay = time.Duration(raw)
	}

	if policy.Jitter && delay > 0 {
		// Full jitter: uniform over [0, delay].
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay = time.Duration(rand.Int64N(int64(delay) + 1))
	}

	return delay
}
