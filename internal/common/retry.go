package common

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

var (
	retryBase            = 500 * time.Millisecond
	retryMaxCount uint64 = 5
)

// Retry runs fn with fibonacci backoff until it succeeds, the attempt limit
// is reached, or ctx is cancelled. fn marks transient failures with
// retry.RetryableError; any other error stops the loop immediately.
func Retry(ctx context.Context, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(retryMaxCount, retry.NewFibonacci(retryBase))
	return retry.Do(ctx, b, fn)
}

// RetryWithResult is Retry for functions that produce a value.
func RetryWithResult[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := Retry(ctx, func(ctx context.Context) error {
		r, err := fn(ctx)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	return result, err
}
