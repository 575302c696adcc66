package cookieauth

import (
	"context"

	"github.com/finchrelia/cookieauth/internal/metrics"
	"github.com/finchrelia/cookieauth/session"
)

// Logout invalidates the session behind token and returns the blank
// cookie to send on the response. Unknown and already-invalidated tokens
// succeed; logout is idempotent. The blank cookie is returned even on a
// store fault so the handler can still clear the client.
func (e *Engine) Logout(ctx context.Context, token string) (session.Cookie, error) {
	if !e.ready() {
		return session.Cookie{}, ErrEngineNotReady
	}

	blank := e.sessions.BlankCookie()
	if token == "" {
		return blank, nil
	}

	if err := e.sessions.Invalidate(ctx, token); err != nil {
		e.inc(metrics.StoreUnavailable)
		return blank, storeFailure(err)
	}

	e.inc(metrics.Logout)
	e.inc(metrics.SessionInvalidated)
	e.emit(ctx, AuditLogout, "", token, true, nil)

	return blank, nil
}

// LogoutAll invalidates every session of a user, for "sign out
// everywhere" and for administrative lockout.
func (e *Engine) LogoutAll(ctx context.Context, userID string) error {
	if !e.ready() {
		return ErrEngineNotReady
	}

	if err := e.sessions.InvalidateUser(ctx, userID); err != nil {
		e.inc(metrics.StoreUnavailable)
		return storeFailure(err)
	}

	e.inc(metrics.LogoutAll)
	e.emit(ctx, AuditLogoutAll, userID, "", true, nil)
	return nil
}
