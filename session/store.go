package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrStoreUnavailable wraps infrastructure failures of a Store.
	// Callers must treat it as retryable/fatal-to-the-request, never as
	// "unauthenticated".
	ErrStoreUnavailable = errors.New("session store unavailable")

	// ErrDuplicateID is returned by Insert when the token already exists.
	// The manager retries with a fresh token instead of overwriting.
	ErrDuplicateID = errors.New("session id already exists")
)

// Store persists sessions. Implementations must be safe for concurrent
// use and must honor ctx cancellation without leaving partial state: an
// Insert either fully commits or is absent.
//
// Absence is not an error: Get returns (nil, nil) for unknown tokens and
// Delete of a nonexistent token succeeds. Every non-nil error must wrap
// ErrStoreUnavailable.
type Store interface {
	// Insert persists a new session, failing with ErrDuplicateID rather
	// than overwriting an existing token.
	Insert(ctx context.Context, s *Session) error

	// Get returns the session for token, or (nil, nil) when absent.
	// Implementations may serve rows past their expiry; the manager
	// performs the authoritative expiry check.
	Get(ctx context.Context, token string) (*Session, error)

	// UpdateExpiry extends an existing session. Updating a token that no
	// longer exists is a no-op, not a recreation.
	UpdateExpiry(ctx context.Context, token string, expiresAt time.Time) error

	// Delete removes the session if present; idempotent.
	Delete(ctx context.Context, token string) error

	// DeleteByUser removes every session belonging to userID.
	DeleteByUser(ctx context.Context, userID string) error
}
