package directory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchrelia/cookieauth"
)

func TestMemoryDirectory_InsertAndFind(t *testing.T) {
	t.Parallel()

	dir := NewMemoryDirectory()
	ctx := context.Background()

	id, err := dir.Insert(ctx, "alice@example.com", "hash-1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	byEmail, err := dir.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, id, byEmail.ID)
	assert.Equal(t, "hash-1", byEmail.PasswordHash)

	byID, err := dir.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestMemoryDirectory_AbsentIsNilNil(t *testing.T) {
	t.Parallel()

	dir := NewMemoryDirectory()
	ctx := context.Background()

	u, err := dir.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = dir.FindByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemoryDirectory_DuplicateEmail(t *testing.T) {
	t.Parallel()

	dir := NewMemoryDirectory()
	ctx := context.Background()

	_, err := dir.Insert(ctx, "bob@example.com", "hash-1")
	require.NoError(t, err)

	_, err = dir.Insert(ctx, "bob@example.com", "hash-2")
	require.ErrorIs(t, err, cookieauth.ErrDuplicateEmail)
	assert.Equal(t, 1, dir.Len())
}

func TestMemoryDirectory_UpdatePasswordHash(t *testing.T) {
	t.Parallel()

	dir := NewMemoryDirectory()
	ctx := context.Background()

	id, err := dir.Insert(ctx, "carol@example.com", "old-hash")
	require.NoError(t, err)

	require.NoError(t, dir.UpdatePasswordHash(ctx, id, "new-hash"))

	u, err := dir.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", u.PasswordHash)

	err = dir.UpdatePasswordHash(ctx, "no-such-id", "hash")
	require.ErrorIs(t, err, cookieauth.ErrUserNotFound)
}

func TestMemoryDirectory_ReturnsCopies(t *testing.T) {
	t.Parallel()

	dir := NewMemoryDirectory()
	ctx := context.Background()

	id, err := dir.Insert(ctx, "dave@example.com", "hash")
	require.NoError(t, err)

	u, err := dir.FindByID(ctx, id)
	require.NoError(t, err)
	u.PasswordHash = "mutated"

	again, err := dir.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hash", again.PasswordHash)
}

func TestMemoryDirectory_Delete(t *testing.T) {
	t.Parallel()

	dir := NewMemoryDirectory()
	ctx := context.Background()

	id, err := dir.Insert(ctx, "erin@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, dir.Delete(ctx, id))
	require.NoError(t, dir.Delete(ctx, id)) // idempotent

	u, err := dir.FindByEmail(ctx, "erin@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 0, dir.Len())
}

func TestMemoryDirectory_ConcurrentInserts(t *testing.T) {
	t.Parallel()

	dir := NewMemoryDirectory()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = dir.Insert(ctx, "race@example.com", "hash")
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, cookieauth.ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, dir.Len())
}

func TestMemoryDirectory_CancelledContext(t *testing.T) {
	t.Parallel()

	dir := NewMemoryDirectory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dir.Insert(ctx, "zoe@example.com", "hash")
	require.ErrorIs(t, err, context.Canceled)
}
