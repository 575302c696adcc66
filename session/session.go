package session

import "time"

// Session is a server-recorded grant of authenticated identity.
type Session struct {
	// ID is the opaque token: the store's lookup key and the cookie value.
	ID string

	// UserID references the user the session was created for. The user
	// record may be deleted out from under the session; callers treat such
	// sessions as invalid on the next validation.
	UserID string

	// ExpiresAt is the absolute expiry. Sessions past it are nonexistent.
	ExpiresAt time.Time

	// Fresh is true when the session was created or had its expiry
	// extended within the current call, meaning a new cookie must be sent.
	// It is derived, never persisted.
	Fresh bool
}

func (s *Session) expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
