package backoff

import "errors"

var (
	// ErrInvalidAttempt indicates an attempt number below 1.
	ErrInvalidAttempt = errors.New("backoff: attempt must be >= 1")

	// ErrInvalidPolicy indicates a policy that violates its invariants.
	ErrInvalidPolicy = errors.New("backoff: invalid policy")
)
