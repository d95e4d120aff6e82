package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// QuotaError is a rate or quota rejection from the provider.
type QuotaError struct {
	Provider string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s: quota or rate limit exceeded", e.Provider)
}

// TransportError wraps a network or server-side failure. Callers may retry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// IsRetryable reports whether the caller may reasonably retry the request.
func IsRetryable(err error) bool {
	var qe *QuotaError
	var te *TransportError
	return errors.As(err, &qe) || errors.As(err, &te)
}

// retryWithBackoff retries fn on quota errors with exponential backoff. Auth
// and transport errors propagate immediately; transport retries are the
// caller's call.
func retryWithBackoff(ctx context.Context, maxRetries int, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		var qe *QuotaError
		if !errors.As(lastErr, &qe) {
			return lastErr
		}

		if attempt < maxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}
