package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists sessions in Redis. Each session is a JSON value
// expiring with the session itself; a per-user SET indexes tokens so
// DeleteByUser stays a handful of key operations.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

type redisRecord struct {
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at_ms"`
}

// NewRedisStore returns a RedisStore using the given key prefix
// ("cookieauth" when empty).
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "cookieauth"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) sessionKey(token string) string {
	return r.prefix + ":sess:" + token
}

func (r *RedisStore) userKey(userID string) string {
	return r.prefix + ":usr:" + userID
}

// Insert stores the session under SETNX semantics: an existing token is
// reported as ErrDuplicateID, never overwritten.
func (r *RedisStore) Insert(ctx context.Context, s *Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("%w: insert of already-expired session", ErrStoreUnavailable)
	}

	payload, err := json.Marshal(redisRecord{UserID: s.UserID, ExpiresAt: s.ExpiresAt.UnixMilli()})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	ok, err := r.client.SetNX(ctx, r.sessionKey(s.ID), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		return ErrDuplicateID
	}

	if err := r.indexToken(ctx, s.UserID, s.ID, ttl); err != nil {
		return err
	}
	return nil
}

// Get returns the stored session or (nil, nil) when the token is unknown.
// A corrupt record is dropped and treated as absent.
func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := r.client.Get(ctx, r.sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var rec redisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		if err := r.client.Del(ctx, r.sessionKey(token)).Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, nil
	}

	return &Session{
		ID:        token,
		UserID:    rec.UserID,
		ExpiresAt: time.UnixMilli(rec.ExpiresAt),
	}, nil
}

// UpdateExpiry rewrites the record with the new expiry under XX semantics,
// so a session deleted in between is not resurrected.
func (r *RedisStore) UpdateExpiry(ctx context.Context, token string, expiresAt time.Time) error {
	current, err := r.Get(ctx, token)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return r.Delete(ctx, token)
	}

	payload, err := json.Marshal(redisRecord{UserID: current.UserID, ExpiresAt: expiresAt.UnixMilli()})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if _, err := r.client.SetXX(ctx, r.sessionKey(token), payload, ttl).Result(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return r.indexToken(ctx, current.UserID, token, ttl)
}

// Delete removes the session and its index entry; idempotent.
func (r *RedisStore) Delete(ctx context.Context, token string) error {
	current, err := r.Get(ctx, token)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.sessionKey(token))
	pipe.SRem(ctx, r.userKey(current.UserID), token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteByUser removes every session token indexed for userID.
func (r *RedisStore) DeleteByUser(ctx context.Context, userID string) error {
	tokens, err := r.client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	pipe := r.client.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, r.sessionKey(token))
	}
	pipe.Del(ctx, r.userKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// indexToken records the token in the user's session set. The set's TTL
// is reset to the latest session TTL, which is always >= the expiry of
// every live session in it.
func (r *RedisStore) indexToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, r.userKey(userID), token)
	pipe.Expire(ctx, r.userKey(userID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
