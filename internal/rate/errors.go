package rate

import "errors"

var (
	// ErrLimited means the attempt budget is exhausted for the window.
	ErrLimited = errors.New("rate limited")

	// ErrUnavailable wraps Redis failures. Callers must not mistake an
	// unreachable limiter for an exhausted budget.
	ErrUnavailable = errors.New("rate limiter unavailable")
)
