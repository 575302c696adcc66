package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the login throttle tuning.
type Config struct {
	MaxAttempts      int
	Cooldown         time.Duration
	EnableIPThrottle bool
}

// Limiter tracks failed login attempts in Redis.
type Limiter struct {
	client redis.UniversalClient
	config Config
}

// New returns a Limiter backed by client.
func New(client redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{client: client, config: cfg}
}

func emailKey(email string) string {
	return "cookieauth:rl:login:e:" + email
}

func ipKey(ip string) string {
	return "cookieauth:rl:login:ip:" + ip
}

// CheckLogin reports whether the email+IP pair is still within budget.
func (l *Limiter) CheckLogin(ctx context.Context, email, ip string) error {
	if err := l.check(ctx, emailKey(email)); err != nil {
		return err
	}
	if l.config.EnableIPThrottle && ip != "" {
		return l.check(ctx, ipKey(ip))
	}
	return nil
}

// RecordFailure counts one failed attempt, starting the cooldown window
// on the first failure. Returns ErrLimited once the budget is exceeded.
func (l *Limiter) RecordFailure(ctx context.Context, email, ip string) error {
	count, err := l.increment(ctx, emailKey(email))
	if err != nil {
		return err
	}
	if count > int64(l.config.MaxAttempts) {
		return ErrLimited
	}

	if l.config.EnableIPThrottle && ip != "" {
		count, err = l.increment(ctx, ipKey(ip))
		if err != nil {
			return err
		}
		if count > int64(l.config.MaxAttempts) {
			return ErrLimited
		}
	}
	return nil
}

// Reset clears the counters after a successful login.
func (l *Limiter) Reset(ctx context.Context, email, ip string) error {
	keys := []string{emailKey(email)}
	if l.config.EnableIPThrottle && ip != "" {
		keys = append(keys, ipKey(ip))
	}
	if err := l.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (l *Limiter) check(ctx context.Context, key string) error {
	count, err := l.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if count >= int64(l.config.MaxAttempts) {
		return ErrLimited
	}
	return nil
}

func (l *Limiter) increment(ctx context.Context, key string) (int64, error) {
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.config.Cooldown)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return incr.Val(), nil
}
