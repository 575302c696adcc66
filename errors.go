package cookieauth

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by [Engine] operations. Callers branch with
// errors.Is; the messages are safe to show to end users except for
// ErrStoreUnavailable, which should map to a generic 5xx.
var (
	// ErrInvalidCredentials is returned by Authenticate for both an
	// unknown email and a wrong password. The two cases are deliberately
	// indistinguishable, including in timing.
	ErrInvalidCredentials = errors.New("could not authenticate, check your credentials")

	// ErrLoginRateLimited is returned when login throttling is enabled
	// and the account or source address exceeded the attempt budget.
	ErrLoginRateLimited = errors.New("too many login attempts, try again later")

	// ErrStoreUnavailable wraps infrastructure failures from the session
	// store or user directory. It is the only engine error that signals
	// a server-side fault.
	ErrStoreUnavailable = errors.New("backing store unavailable")

	// ErrEngineNotReady is returned when an Engine method is called on a
	// nil or unbuilt engine.
	ErrEngineNotReady = errors.New("engine not ready, call Build first")

	// ErrDuplicateEmail is the contract error a [UserDirectory] returns
	// from Insert when the normalized email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUserNotFound is returned by operations that require an existing
	// user record, such as ChangePassword.
	ErrUserNotFound = errors.New("user not found")
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors accumulates every rejected field of one request so a
// form can render all problems at once. It is returned by Register and
// ChangePassword; callers detect it with errors.As.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether a field named name was rejected.
func (e ValidationErrors) Has(name string) bool {
	for _, fe := range e {
		if fe.Field == name {
			return true
		}
	}
	return false
}

// storeFailure tags err as a backing-store fault. Both sentinels stay on
// the chain so errors.Is works against ErrStoreUnavailable and against
// the original cause.
func storeFailure(err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
