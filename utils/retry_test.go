package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryForever_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	failures := 0

	result, err := RetryForever(context.Background(), time.Millisecond, func(err error, attempt int) {
		failures++
	}, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("backend unavailable")
		}
		return "OK", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "OK", result)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, failures)
}

func TestRetryForever_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RetryForever(ctx, time.Millisecond, nil, func() (string, error) {
		return "", errors.New("always fails")
	})

	assert.ErrorIs(t, err, context.Canceled)
}
