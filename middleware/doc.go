// Package middleware exposes HTTP adapters over cookieauth.Engine for
// cookie-carried sessions.
//
// # Guards
//
//   - [Attach] — resolves the session cookie on every request and puts
//     the result in the request context; anonymous requests pass through.
//   - [Require] — like Attach but rejects unauthenticated requests with
//     401 before the handler runs.
//
// Both guards forward refreshed and blank cookies onto the response, so
// sliding expiration and client-side cleanup work without handler code.
// They also record the client address via cookieauth.WithClientIP for
// throttling and audit.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It makes no
// authentication decisions of its own and never touches the session
// store directly.
package middleware
