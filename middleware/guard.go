package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/finchrelia/cookieauth"
)

type verificationContextKey struct{}

// VerificationFromContext returns the result Attach or Require stored
// for this request. The bool is false outside a guarded handler.
func VerificationFromContext(ctx context.Context) (cookieauth.Verification, bool) {
	v, ok := ctx.Value(verificationContextKey{}).(cookieauth.Verification)
	return v, ok
}

// UserFromContext is a shortcut for the authenticated user, nil when the
// request is anonymous.
func UserFromContext(ctx context.Context) *cookieauth.User {
	v, ok := VerificationFromContext(ctx)
	if !ok {
		return nil
	}
	return v.User
}

// Attach resolves the session cookie on every request. Authenticated or
// not, the request proceeds; handlers inspect the outcome with
// [VerificationFromContext]. Refreshed and blank cookies are written to
// the response here.
func Attach(engine *cookieauth.Engine, cookieName string) func(http.Handler) http.Handler {
	return guard(engine, cookieName, false)
}

// Require is Attach plus enforcement: unauthenticated requests are
// rejected with 401 before the handler runs.
func Require(engine *cookieauth.Engine, cookieName string) func(http.Handler) http.Handler {
	return guard(engine, cookieName, true)
}

func guard(engine *cookieauth.Engine, cookieName string, enforce bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			ctx := cookieauth.WithClientIP(r.Context(), remoteIP(r))

			var token string
			if c, err := r.Cookie(cookieName); err == nil {
				token = c.Value
			}

			v, err := engine.VerifyRequest(ctx, token)
			if err != nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			if v.Cookie != nil {
				http.SetCookie(w, v.Cookie.HTTPCookie())
			}

			if enforce && !v.Authenticated() {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx = context.WithValue(ctx, verificationContextKey{}, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// remoteIP strips the port from RemoteAddr. Proxy headers are
// deliberately not consulted; terminate them upstream if needed.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
