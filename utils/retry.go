package utils

import (
	"context"
	"time"
)

// RetryForever calls fn until it succeeds, waiting delay between attempts.
// It stops early and returns ctx.Err() if ctx is cancelled between attempts.
// onError, if non-nil, is invoked with the error and the attempt number
// (starting at 1) before each wait, so callers can log at debug level
// without RetryForever importing a logging package of its own.
func RetryForever(ctx context.Context, delay time.Duration, onError func(err error, attempt int), fn func() (string, error)) (string, error) {
	attempt := 0
	for {
		attempt++
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if onError != nil {
			onError(err, attempt)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
}
