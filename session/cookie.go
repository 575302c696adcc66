package session

import (
	"net/http"
	"time"
)

// CookieConfig fixes the attribute policy for every cookie the manager
// mints. Callers never assemble session cookies by hand.
type CookieConfig struct {
	// Name of the cookie, e.g. "auth_session".
	Name string

	// Path defaults to "/" when empty.
	Path string

	// Secure should be true everywhere except local development over
	// plain HTTP.
	Secure bool

	// Persistent controls whether cookies carry Max-Age (survive browser
	// restarts) or are session-only.
	Persistent bool
}

// Cookie is the wire representation of a session token. It is a plain
// value: the caller applies it to an HTTP response (or any other
// transport) and never mutates it.
type Cookie struct {
	Name     string
	Value    string
	Path     string
	MaxAge   int
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
}

// HTTPCookie converts to *http.Cookie for use with http.SetCookie.
func (c Cookie) HTTPCookie() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		MaxAge:   c.MaxAge,
		HttpOnly: c.HTTPOnly,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
}

// Blank reports whether the cookie clears the client's session value.
func (c Cookie) Blank() bool {
	return c.Value == ""
}

func newCookie(cfg CookieConfig, token string, expiresAt, now time.Time) Cookie {
	c := baseCookie(cfg)
	c.Value = token
	if cfg.Persistent {
		c.MaxAge = int(expiresAt.Sub(now).Seconds())
	}
	return c
}

// newBlankCookie carries an empty value and MaxAge<0, which net/http
// serializes as Max-Age=0: an instruction to drop the stale cookie.
func newBlankCookie(cfg CookieConfig) Cookie {
	c := baseCookie(cfg)
	c.MaxAge = -1
	return c
}

func baseCookie(cfg CookieConfig) Cookie {
	path := cfg.Path
	if path == "" {
		path = "/"
	}
	return Cookie{
		Name:     cfg.Name,
		Path:     path,
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
