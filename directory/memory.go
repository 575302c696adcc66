package directory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/finchrelia/cookieauth"
)

// MemoryDirectory keeps accounts in process memory. Suited to tests,
// examples, and prototypes; nothing survives a restart.
type MemoryDirectory struct {
	mu      sync.RWMutex
	byEmail map[string]*cookieauth.User
	byID    map[string]*cookieauth.User
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		byEmail: make(map[string]*cookieauth.User),
		byID:    make(map[string]*cookieauth.User),
	}
}

func (d *MemoryDirectory) FindByEmail(ctx context.Context, email string) (*cookieauth.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (d *MemoryDirectory) FindByID(ctx context.Context, id string) (*cookieauth.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (d *MemoryDirectory) Insert(ctx context.Context, email, passwordHash string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[email]; exists {
		return "", cookieauth.ErrDuplicateEmail
	}

	u := &cookieauth.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	d.byEmail[email] = u
	d.byID[u.ID] = u
	return u.ID, nil
}

func (d *MemoryDirectory) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.byID[userID]
	if !ok {
		return cookieauth.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// Delete removes an account. Sessions pointing at it become stale and
// are cleaned up on the next VerifyRequest.
func (d *MemoryDirectory) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.byID[userID]
	if !ok {
		return nil
	}
	delete(d.byEmail, u.Email)
	delete(d.byID, userID)
	return nil
}

// Len reports the number of stored accounts.
func (d *MemoryDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID)
}

var _ cookieauth.UserDirectory = (*MemoryDirectory)(nil)
