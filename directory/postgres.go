package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finchrelia/cookieauth"
)

// pgUniqueViolation is the PostgreSQL error code for a unique
// constraint violation.
const pgUniqueViolation = "23505"

// Schema is the table the PostgresDirectory expects. Run it through your
// migration tool of choice.
const Schema = `
CREATE TABLE IF NOT EXISTS auth_users (
    id            UUID PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// PostgresDirectory stores accounts in an auth_users table through a pgx
// connection pool. The pool is owned by the caller.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

func (d *PostgresDirectory) FindByEmail(ctx context.Context, email string) (*cookieauth.User, error) {
	const query = `SELECT id, email, password_hash FROM auth_users WHERE email = $1`

	var u cookieauth.User
	err := d.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("find user by email", err)
	}
	return &u, nil
}

func (d *PostgresDirectory) FindByID(ctx context.Context, id string) (*cookieauth.User, error) {
	const query = `SELECT id, email, password_hash FROM auth_users WHERE id = $1`

	var u cookieauth.User
	err := d.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("find user by id", err)
	}
	return &u, nil
}

func (d *PostgresDirectory) Insert(ctx context.Context, email, passwordHash string) (string, error) {
	const query = `INSERT INTO auth_users (id, email, password_hash) VALUES ($1, $2, $3)`

	id := uuid.NewString()
	if _, err := d.pool.Exec(ctx, query, id, email, passwordHash); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return "", cookieauth.ErrDuplicateEmail
		}
		return "", storeErr("insert user", err)
	}
	return id, nil
}

func (d *PostgresDirectory) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	const query = `UPDATE auth_users SET password_hash = $1, updated_at = now() WHERE id = $2`

	tag, err := d.pool.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return storeErr("update password hash", err)
	}
	if tag.RowsAffected() == 0 {
		return cookieauth.ErrUserNotFound
	}
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", cookieauth.ErrStoreUnavailable, op, err)
}

var _ cookieauth.UserDirectory = (*PostgresDirectory)(nil)
