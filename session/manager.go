package session

import (
	"context"
	"errors"
	"time"
)

// insertAttempts bounds collision retries on Create. With 256-bit tokens
// a single retry is already vanishingly unlikely.
const insertAttempts = 3

// Config tunes a Manager.
type Config struct {
	// TTL is the session lifetime from creation or refresh.
	TTL time.Duration

	// RenewalWindow is the remaining-lifetime threshold below which a
	// validated session has its expiry extended (sliding expiration).
	// Zero selects TTL/3.
	RenewalWindow time.Duration

	// Cookie fixes the attributes of every minted cookie.
	Cookie CookieConfig
}

// Manager owns the session lifecycle. It is the only component that mints
// or destroys store entries, and the only constructor of Cookies. Safe
// for concurrent use; holds no mutable state of its own.
type Manager struct {
	store  Store
	ttl    time.Duration
	window time.Duration
	cookie CookieConfig

	now func() time.Time // test seam
}

// NewManager returns a Manager over store.
func NewManager(store Store, cfg Config) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session store required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("session TTL must be positive")
	}
	if cfg.Cookie.Name == "" {
		return nil, errors.New("session cookie name required")
	}
	window := cfg.RenewalWindow
	if window <= 0 {
		window = cfg.TTL / 3
	}
	if window > cfg.TTL {
		return nil, errors.New("renewal window exceeds TTL")
	}
	return &Manager{
		store:  store,
		ttl:    cfg.TTL,
		window: window,
		cookie: cfg.Cookie,
		now:    time.Now,
	}, nil
}

// Create mints a new session for userID, persists it, and returns the
// session together with the cookie carrying its token. Sessions are
// additive: concurrent logins for one user each get their own.
func (m *Manager) Create(ctx context.Context, userID string) (*Session, Cookie, error) {
	now := m.now()

	var lastErr error
	for range insertAttempts {
		token, err := NewToken()
		if err != nil {
			return nil, Cookie{}, err
		}

		s := &Session{
			ID:        token,
			UserID:    userID,
			ExpiresAt: now.Add(m.ttl),
			Fresh:     true,
		}

		switch err := m.store.Insert(ctx, s); {
		case err == nil:
			return s, newCookie(m.cookie, s.ID, s.ExpiresAt, now), nil
		case errors.Is(err, ErrDuplicateID):
			lastErr = err
		default:
			return nil, Cookie{}, err
		}
	}
	return nil, Cookie{}, lastErr
}

// Validate resolves token against the store.
//
// An empty token is the normal unauthenticated case: (nil, nil, nil).
// Unknown or expired tokens return (nil, blank cookie, nil) so the caller
// can clear the client's stale value. A valid session inside the renewal
// window has its expiry extended and comes back Fresh with a refreshed
// cookie; otherwise the cookie is nil and nothing need be re-sent.
func (m *Manager) Validate(ctx context.Context, token string) (*Session, *Cookie, error) {
	if token == "" {
		return nil, nil, nil
	}

	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if s == nil {
		blank := newBlankCookie(m.cookie)
		return nil, &blank, nil
	}

	now := m.now()
	if s.expired(now) {
		if err := m.store.Delete(ctx, token); err != nil {
			return nil, nil, err
		}
		blank := newBlankCookie(m.cookie)
		return nil, &blank, nil
	}

	if s.ExpiresAt.Sub(now) < m.window {
		s.ExpiresAt = now.Add(m.ttl)
		if err := m.store.UpdateExpiry(ctx, token, s.ExpiresAt); err != nil {
			return nil, nil, err
		}
		s.Fresh = true
		refreshed := newCookie(m.cookie, s.ID, s.ExpiresAt, now)
		return s, &refreshed, nil
	}

	s.Fresh = false
	return s, nil, nil
}

// Invalidate deletes the session if present. Invalidating an unknown or
// already-expired token is not an error.
func (m *Manager) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// InvalidateUser deletes every session belonging to userID.
func (m *Manager) InvalidateUser(ctx context.Context, userID string) error {
	return m.store.DeleteByUser(ctx, userID)
}

// BlankCookie returns the cookie that clears the client's session value.
// Logout always sends it, whether or not a session existed.
func (m *Manager) BlankCookie() Cookie {
	return newBlankCookie(m.cookie)
}
