package cookieauth

import (
	"context"
	"time"

	"github.com/finchrelia/cookieauth/internal/metrics"
)

// VerifyRequest resolves a raw cookie value to the owning user.
//
// An absent, unknown, expired, or tampered token is not an error: the
// result is simply unauthenticated, with a blank cookie to forward when
// the client sent something worth clearing. When the session sat in its
// renewal window the result carries a refreshed cookie that the handler
// must write. Only a backing-store fault returns an error.
func (e *Engine) VerifyRequest(ctx context.Context, token string) (Verification, error) {
	if !e.ready() {
		return Verification{}, ErrEngineNotReady
	}

	start := time.Now()
	defer func() {
		e.metrics.ObserveVerifyLatency(time.Since(start))
	}()

	sess, cookie, err := e.sessions.Validate(ctx, token)
	if err != nil {
		e.inc(metrics.StoreUnavailable)
		return Verification{}, storeFailure(err)
	}
	if sess == nil {
		e.inc(metrics.VerifyUnauthenticated)
		if cookie != nil {
			// A blank cookie here means the store rejected a token the
			// client presented, expired or never issued.
			e.inc(metrics.SessionExpired)
		}
		return Verification{Cookie: cookie}, nil
	}

	user, err := e.directory.FindByID(ctx, sess.UserID)
	if err != nil {
		e.inc(metrics.StoreUnavailable)
		return Verification{}, storeFailure(err)
	}
	if user == nil {
		// The account is gone; the session must not outlive it.
		if err := e.sessions.Invalidate(ctx, sess.ID); err != nil {
			e.inc(metrics.StoreUnavailable)
			return Verification{}, storeFailure(err)
		}
		e.inc(metrics.SessionInvalidated)
		e.inc(metrics.VerifyUnauthenticated)
		blank := e.sessions.BlankCookie()
		return Verification{Cookie: &blank}, nil
	}

	if sess.Fresh {
		e.inc(metrics.SessionRefreshed)
	}
	e.inc(metrics.VerifyAuthenticated)

	return Verification{User: user, Session: sess, Cookie: cookie}, nil
}
