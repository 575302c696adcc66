package cookieauth

import (
	"context"

	"github.com/finchrelia/cookieauth/session"
)

// User is the account record the engine works with. The directory owns
// any further profile fields; the engine only ever reads these three.
type User struct {
	ID           string
	Email        string
	PasswordHash string
}

// UserDirectory is the narrow persistence port for account records. The
// engine is the only writer of PasswordHash; everything else about user
// storage belongs to the host application.
//
// Implementations must treat email as already normalized (lowercase,
// trimmed) and should wrap infrastructure failures with
// [ErrStoreUnavailable]. Ready-made implementations live under
// directory/.
type UserDirectory interface {
	// FindByEmail returns the user for a normalized email, or (nil, nil)
	// when no such account exists.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the user for an ID, or (nil, nil) when the record
	// is gone.
	FindByID(ctx context.Context, id string) (*User, error)

	// Insert creates an account and returns its new ID. It must fail
	// with [ErrDuplicateEmail] when the email is taken, atomically with
	// the uniqueness check.
	Insert(ctx context.Context, email, passwordHash string) (string, error)

	// UpdatePasswordHash replaces the stored credential hash.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
}

// RegisterResult is the outcome of a successful registration. The cookie
// belongs to the session created for the new account and must be sent on
// the response.
type RegisterResult struct {
	UserID string
	Cookie session.Cookie
}

// AuthResult is the outcome of a successful login or password change.
type AuthResult struct {
	UserID string
	Cookie session.Cookie
}

// Verification is the outcome of checking a request cookie.
//
// Exactly one of two shapes comes back: an authenticated request carries
// User and Session (and a refresh Cookie when the expiry was extended),
// an unauthenticated one carries neither and may carry a blank Cookie
// that the handler should forward to clear the client.
type Verification struct {
	User    *User
	Session *session.Session

	// Cookie, when non-nil, must be written to the response. It is
	// either a refreshed session cookie or a blank one.
	Cookie *session.Cookie
}

// Authenticated reports whether the request carried a live session.
func (v Verification) Authenticated() bool {
	return v.Session != nil
}
