package runner

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/madara"
)

// RequestFunc performs one request and returns the response body.
type RequestFunc func(ctx context.Context) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for request retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// WithRetry performs request, retrying failures after each of delays.
// Not-found responses and context errors are returned without retrying.
// The logger function, if provided, is called for each retry attempt.
func WithRetry(ctx context.Context, desc string, request RequestFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := request(ctx)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", desc, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch madara.ErrorCode(err) {
	case madara.ENOTFOUND, madara.EINVALID:
		return false
	}
	return true
}
