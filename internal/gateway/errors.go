package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
)

// AuthError means the token is missing, invalid, or lacks access.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (check your GitHub token): %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// NotFoundError means the repository, branch, or reference does not exist.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Resource, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// RateLimitError means GitHub refused the request due to a primary or
// secondary rate limit. The gateway never waits it out; RetryAfter is a hint
// for the caller.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("GitHub rate limit exceeded (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// MalformedDataError means a single API payload is missing required fields.
// Callers skip the record with a warning instead of aborting the listing.
type MalformedDataError struct {
	Field string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed API payload: missing %s", e.Field)
}

// mapAPIError translates go-github errors into the gateway taxonomy.
// resource names the identifier being fetched, for NotFoundError messages.
func mapAPIError(err error, resource string) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitError{RetryAfter: time.Until(rateErr.Rate.Reset.Time), Err: err}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &RateLimitError{RetryAfter: abuseErr.GetRetryAfter(), Err: err}
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{Err: err}
		case http.StatusNotFound:
			return &NotFoundError{Resource: resource, Err: err}
		case http.StatusTooManyRequests:
			return &RateLimitError{RetryAfter: retryAfterHeader(respErr.Response), Err: err}
		}
	}
	return fmt.Errorf("request for %s failed: %w", resource, err)
}

func retryAfterHeader(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			return d
		}
	}
	return 0
}
