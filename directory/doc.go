// Package directory provides ready-made UserDirectory implementations:
// an in-memory map for tests and examples, and a PostgreSQL directory
// backed by a pgx pool for production use.
//
// Both honor the cookieauth.UserDirectory contract: emails arrive
// normalized, Insert fails with cookieauth.ErrDuplicateEmail atomically
// with the uniqueness check, lookups return (nil, nil) for absent
// records, and infrastructure failures wrap
// cookieauth.ErrStoreUnavailable.
package directory
