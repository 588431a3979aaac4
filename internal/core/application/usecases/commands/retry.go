package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/pkg/errs"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds the re-execution of a whole transaction after a transient storage
// failure such as a serialization failure or a deadlock.
type RetryPolicy struct {
	Base       time.Duration
	Cap        time.Duration
	MaxRetries uint64
}

// DefaultRetryPolicy backs off exponentially from 50ms, capped at 1s, for at most 4 retries.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Base:       50 * time.Millisecond,
		Cap:        time.Second,
		MaxRetries: 4,
	}
}

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.Base
	if base <= 0 {
		base = time.Millisecond
	}
	b := retry.NewExponential(base)
	if p.Cap > 0 {
		b = retry.WithCappedDuration(p.Cap, b)
	}
	return retry.WithMaxRetries(p.MaxRetries, b)
}

// inTransaction runs fn until it succeeds, fails with a non-transient error or the policy
// gives up. fn must open and close its own unit of work so every attempt starts clean.
func (p RetryPolicy) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, errs.ErrTransientStorage) {
			return retry.RetryableError(err)
		}
		return err
	})
}
