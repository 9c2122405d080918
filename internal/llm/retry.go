package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryPolicy is exponential backoff with jitter.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// Jitter is the fraction of each delay randomized in either direction.
	Jitter float64
}

// DefaultRetryPolicy makes three attempts, waiting about 1s then 2s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, BaseDelay: time.Second, MaxDelay: 10 * time.Second, Jitter: 0.2}
}

func (rp RetryPolicy) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := rp.BaseDelay << attempt
	if d > rp.MaxDelay || d <= 0 {
		d = rp.MaxDelay
	}
	if rp.Jitter > 0 {
		d += time.Duration(float64(d) * rp.Jitter * (2*rand.Float64() - 1))
	}
	return max(d, 0)
}

type retrying struct {
	next    Provider
	policy  RetryPolicy
	timeout time.Duration
}

// WithRetry retries transient failures. An invalid response is retried at
// most once. timeout, when positive, bounds the whole call.
func WithRetry(p Provider, policy RetryPolicy, timeout time.Duration) Provider {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	return &retrying{next: p, policy: policy, timeout: timeout}
}

func (r *retrying) Model() string { return r.next.Model() }

func (r *retrying) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	invalidSeen := false
	var err error
	for attempt := 0; attempt < r.policy.Attempts; attempt++ {
		var c *Completion
		c, err = r.next.Complete(ctx, p)
		if err == nil {
			return c, nil
		}

		var invalid *ErrInvalidResponse
		if errors.As(err, &invalid) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		} else if !transient(err) {
			return nil, err
		}
		if attempt == r.policy.Attempts-1 {
			break
		}

		t := time.NewTimer(r.policy.delay(attempt, err))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, err
}

func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var truncated *ErrMaxTokensExceeded
	var rejected *ErrRequestRejected
	return !errors.As(err, &truncated) && !errors.As(err, &rejected)
}
