package cookieauth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/finchrelia/cookieauth/internal/metrics"
	"github.com/finchrelia/cookieauth/internal/rate"
)

// Authenticate checks an email and password and, on success, creates a
// session and returns its cookie.
//
// An unknown email and a wrong password both return
// [ErrInvalidCredentials]; the two paths do the same amount of KDF work
// so response timing does not reveal which one happened. With throttling
// enabled, exhausting the attempt budget returns [ErrLoginRateLimited].
func (e *Engine) Authenticate(ctx context.Context, email, plainPassword string) (*AuthResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	email = normalizeEmail(email)
	ip := clientIPFromContext(ctx)

	if e.limiter != nil {
		switch err := e.limiter.CheckLogin(ctx, email, ip); {
		case errors.Is(err, rate.ErrLimited):
			e.inc(metrics.LoginRateLimited)
			e.emit(ctx, AuditLogin, "", "", false, ErrLoginRateLimited)
			return nil, ErrLoginRateLimited
		case err != nil:
			e.inc(metrics.StoreUnavailable)
			return nil, storeFailure(err)
		}
	}

	user, err := e.directory.FindByEmail(ctx, email)
	if err != nil {
		e.inc(metrics.StoreUnavailable)
		return nil, storeFailure(err)
	}

	if user == nil {
		// Burn the same KDF cost as a real check before rejecting.
		e.hasher.Verify(plainPassword, e.dummyHash)
		return nil, e.loginFailed(ctx, email, ip, "")
	}

	if !e.hasher.Verify(plainPassword, user.PasswordHash) {
		return nil, e.loginFailed(ctx, email, ip, user.ID)
	}

	if e.limiter != nil {
		if err := e.limiter.Reset(ctx, email, ip); err != nil {
			e.logger.WarnContext(ctx, "login counter reset failed", slog.Any("error", err))
		}
	}

	if e.config.Password.RehashOnLogin && e.hasher.NeedsRehash(user.PasswordHash) {
		e.rehash(ctx, user.ID, plainPassword)
	}

	sess, cookie, err := e.sessions.Create(ctx, user.ID)
	if err != nil {
		e.inc(metrics.StoreUnavailable)
		return nil, storeFailure(err)
	}

	e.inc(metrics.LoginSuccess)
	e.inc(metrics.SessionCreated)
	e.emit(ctx, AuditLogin, user.ID, sess.ID, true, nil)

	return &AuthResult{UserID: user.ID, Cookie: cookie}, nil
}

// loginFailed records the failure and returns the caller-facing error.
// The audit event carries the user ID when one was resolved; the
// returned error never distinguishes the cases.
func (e *Engine) loginFailed(ctx context.Context, email, ip, userID string) error {
	e.inc(metrics.LoginFailure)
	e.emit(ctx, AuditLogin, userID, "", false, ErrInvalidCredentials)

	if e.limiter != nil {
		switch err := e.limiter.RecordFailure(ctx, email, ip); {
		case errors.Is(err, rate.ErrLimited):
			e.inc(metrics.LoginRateLimited)
			return ErrLoginRateLimited
		case err != nil:
			e.logger.WarnContext(ctx, "login failure recording failed", slog.Any("error", err))
		}
	}
	return ErrInvalidCredentials
}

// rehash upgrades a stored hash to current parameters. Best effort; a
// failure leaves the old hash in place and login still succeeds.
func (e *Engine) rehash(ctx context.Context, userID, plainPassword string) {
	hash, err := e.hasher.Hash(plainPassword)
	if err != nil {
		e.logger.WarnContext(ctx, "password rehash failed", slog.Any("error", err))
		return
	}
	if err := e.directory.UpdatePasswordHash(ctx, userID, hash); err != nil {
		e.logger.WarnContext(ctx, "password rehash store failed", slog.Any("error", err))
	}
}
