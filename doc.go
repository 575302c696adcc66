// Package cookieauth is a cookie-based session authentication core:
// credential registration, login verification, session lifecycle, and
// route guarding, with no HTTP surface of its own.
//
// The package is transport-agnostic by construction. Request handlers
// pass raw cookie values in and receive structured results out; the
// engine never reads headers or writes responses. The [session.Store]
// is the sole source of truth for session validity — possession of a
// cookie never implies anything on its own.
//
// # Architecture boundaries
//
// cookieauth is the public orchestration surface. It exposes [Engine],
// [Builder], [Config], sentinel errors, and value types. Reusable pieces
// live in subpackages: password hashing under password, session
// lifecycle under session, ready-made user directories under directory,
// HTTP adapters under middleware. Coordination helpers (rate limiting,
// audit dispatch, metrics counters) live under internal/ and are never
// exported.
//
// # Failure model
//
// Validation and credential failures are typed results
// ([ValidationErrors], [ErrInvalidCredentials]); a missing or expired
// session is a nil result plus a blank cookie, not an error. Only
// [ErrStoreUnavailable] propagates as a genuine server failure.
//
// Engine methods are safe for concurrent use after [Builder.Build]. The
// password KDF runs inline on the calling goroutine and is intentionally
// slow; hosts with strict latency budgets should place login and
// registration handlers accordingly.
package cookieauth
