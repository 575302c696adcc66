package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedisStore(client, "catest")
}

func TestRedisInsertGet(t *testing.T) {
	ctx := context.Background()
	_, store := newTestRedisStore(t)

	exp := time.Now().Add(time.Hour).Truncate(time.Millisecond)
	require.NoError(t, store.Insert(ctx, &Session{ID: "tok-1", UserID: "user-1", ExpiresAt: exp}))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok-1", got.ID)
	assert.Equal(t, "user-1", got.UserID)
	assert.True(t, got.ExpiresAt.Equal(exp))
}

func TestRedisGetUnknown(t *testing.T) {
	_, store := newTestRedisStore(t)

	got, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisInsertDuplicate(t *testing.T) {
	ctx := context.Background()
	_, store := newTestRedisStore(t)

	exp := time.Now().Add(time.Hour)
	require.NoError(t, store.Insert(ctx, &Session{ID: "tok-1", UserID: "user-1", ExpiresAt: exp}))

	err := store.Insert(ctx, &Session{ID: "tok-1", UserID: "user-2", ExpiresAt: exp})
	require.ErrorIs(t, err, ErrDuplicateID)

	// The original row must be untouched.
	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
}

func TestRedisKeyExpiresWithSession(t *testing.T) {
	ctx := context.Background()
	mr, store := newTestRedisStore(t)

	require.NoError(t, store.Insert(ctx, &Session{ID: "tok-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Minute)}))

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Nil(t, got, "redis TTL must reap the row")
}

func TestRedisUpdateExpiry(t *testing.T) {
	ctx := context.Background()
	_, store := newTestRedisStore(t)

	require.NoError(t, store.Insert(ctx, &Session{ID: "tok-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}))

	newExp := time.Now().Add(48 * time.Hour).Truncate(time.Millisecond)
	require.NoError(t, store.UpdateExpiry(ctx, "tok-1", newExp))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.ExpiresAt.Equal(newExp))
	assert.Equal(t, "user-1", got.UserID)
}

func TestRedisUpdateExpiryUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	mr, store := newTestRedisStore(t)

	require.NoError(t, store.UpdateExpiry(ctx, "missing", time.Now().Add(time.Hour)))
	assert.False(t, mr.Exists("catest:sess:missing"), "update must never recreate a deleted session")
}

func TestRedisDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	_, store := newTestRedisStore(t)

	require.NoError(t, store.Insert(ctx, &Session{ID: "tok-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, store.Delete(ctx, "tok-1"))
	require.NoError(t, store.Delete(ctx, "tok-1"))
	require.NoError(t, store.Delete(ctx, "never-existed"))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisDeleteByUser(t *testing.T) {
	ctx := context.Background()
	_, store := newTestRedisStore(t)

	exp := time.Now().Add(time.Hour)
	require.NoError(t, store.Insert(ctx, &Session{ID: "tok-1", UserID: "user-1", ExpiresAt: exp}))
	require.NoError(t, store.Insert(ctx, &Session{ID: "tok-2", UserID: "user-1", ExpiresAt: exp}))
	require.NoError(t, store.Insert(ctx, &Session{ID: "tok-3", UserID: "user-2", ExpiresAt: exp}))

	require.NoError(t, store.DeleteByUser(ctx, "user-1"))

	for _, token := range []string{"tok-1", "tok-2"} {
		got, err := store.Get(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, got)
	}

	got, err := store.Get(ctx, "tok-3")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestRedisCorruptRecordTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	mr, store := newTestRedisStore(t)

	require.NoError(t, mr.Set("catest:sess:bad", "{not json"))

	got, err := store.Get(ctx, "bad")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("catest:sess:bad"), "corrupt row must be dropped")
}

func TestRedisUnavailableWrapped(t *testing.T) {
	mr, store := newTestRedisStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), "tok-1")
	require.ErrorIs(t, err, ErrStoreUnavailable)

	err = store.Insert(context.Background(), &Session{ID: "tok-1", UserID: "u", ExpiresAt: time.Now().Add(time.Hour)})
	require.ErrorIs(t, err, ErrStoreUnavailable)
}
