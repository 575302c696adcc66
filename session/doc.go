// Package session implements opaque-token session lifecycle management:
// creation, validation with sliding expiration, and invalidation.
//
// A session moves through a single state machine:
//
//	nonexistent -> active -> (refreshed | expired | invalidated) -> nonexistent
//
// The Store is the sole source of truth for validity. Tokens are 32 bytes
// of crypto/rand output, base64url-encoded, carrying no decodable meaning;
// possession of a cookie never implies validity on its own. Nothing is
// cached between calls — every Validate re-reads the store, so an
// invalidated session is rejected on the very next request.
//
// "Not found" and "expired" are routine outcomes, returned as nil sessions
// together with a blank Cookie the caller should re-send to clear the
// client's stale value. Only store infrastructure failures are errors,
// wrapped with ErrStoreUnavailable.
package session
