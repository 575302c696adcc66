package cookieauth

import (
	"context"
	"fmt"
	"strconv"

	"github.com/finchrelia/cookieauth/internal/metrics"
)

// ChangePassword verifies the current password, stores a new hash,
// invalidates every existing session of the user, and signs the caller
// back in with a fresh session.
//
// A wrong current password returns [ErrInvalidCredentials]; a new
// password below the minimum length returns [ValidationErrors]. Existing
// sessions on other devices are gone either way the change succeeds.
func (e *Engine) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*AuthResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	user, err := e.directory.FindByID(ctx, userID)
	if err != nil {
		e.inc(metrics.StoreUnavailable)
		return nil, storeFailure(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !e.hasher.Verify(currentPassword, user.PasswordHash) {
		e.inc(metrics.PasswordChangeFailure)
		e.emit(ctx, AuditPasswordChange, userID, "", false, ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	if len(newPassword) < e.config.Password.MinLength {
		e.inc(metrics.PasswordChangeFailure)
		errs := ValidationErrors{{
			Field:   "password",
			Message: "must be at least " + strconv.Itoa(e.config.Password.MinLength) + " characters",
		}}
		e.emit(ctx, AuditPasswordChange, userID, "", false, errs)
		return nil, errs
	}

	hash, err := e.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := e.directory.UpdatePasswordHash(ctx, userID, hash); err != nil {
		e.inc(metrics.StoreUnavailable)
		return nil, storeFailure(err)
	}

	// Old sessions die with the old credential.
	if err := e.sessions.InvalidateUser(ctx, userID); err != nil {
		e.inc(metrics.StoreUnavailable)
		return nil, storeFailure(err)
	}

	sess, cookie, err := e.sessions.Create(ctx, userID)
	if err != nil {
		e.inc(metrics.StoreUnavailable)
		return nil, storeFailure(err)
	}

	e.inc(metrics.PasswordChangeSuccess)
	e.inc(metrics.SessionCreated)
	e.emit(ctx, AuditPasswordChange, userID, sess.ID, true, nil)

	return &AuthResult{UserID: userID, Cookie: cookie}, nil
}
