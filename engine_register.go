package cookieauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finchrelia/cookieauth/internal/metrics"
)

// Register creates an account and signs it in, returning the new user ID
// and the session cookie to set on the response.
//
// Bad input comes back as [ValidationErrors] with every rejected field,
// including a taken email, so callers render one error per form field.
// Any other error is a store fault wrapped in [ErrStoreUnavailable].
func (e *Engine) Register(ctx context.Context, email, plainPassword string) (*RegisterResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	email = normalizeEmail(email)
	if errs := e.checkRegistration(email, plainPassword); len(errs) > 0 {
		e.inc(metrics.RegisterValidationFailure)
		e.emit(ctx, AuditRegister, "", "", false, errs)
		return nil, errs
	}

	hash, err := e.hasher.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := e.directory.Insert(ctx, email, hash)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			e.inc(metrics.RegisterDuplicate)
			errs := ValidationErrors{{Field: "email", Message: "already in use"}}
			e.emit(ctx, AuditRegister, "", "", false, errs)
			return nil, errs
		}
		e.inc(metrics.StoreUnavailable)
		return nil, storeFailure(err)
	}

	sess, cookie, err := e.sessions.Create(ctx, userID)
	if err != nil {
		e.inc(metrics.StoreUnavailable)
		return nil, storeFailure(err)
	}

	e.inc(metrics.RegisterSuccess)
	e.inc(metrics.SessionCreated)
	e.emit(ctx, AuditRegister, userID, sess.ID, true, nil)
	e.logger.InfoContext(ctx, "user registered", slog.String("user_id", userID))

	return &RegisterResult{UserID: userID, Cookie: cookie}, nil
}
