// Package backoff decides whether and when to retry failing operations.
//
// The core is the pure calculator Next, which maps an attempt number and a
// Policy to a Decision:
//
//	policy := backoff.Policy{
//	    BaseDelay:   100 * time.Millisecond,
//	    Multiplier:  2,
//	    MaxDelay:    time.Second,
//	    MaxAttempts: 5,
//	    Jitter:      true,
//	}
//
//	decision, err := backoff.Next(attempt, policy)
//	if decision.Retry {
//	    time.Sleep(decision.Delay)
//	}
//
// Retryer packages the loop for callers that want the counting, sleeping,
// and cancellation handled for them, typically around outbound HTTP calls:
//
//	r, _ := backoff.NewRetryer(policy)
//	err := r.Execute(ctx, func(ctx context.Context) error {
//	    return callExternalService(ctx)
//	})
package backoff
