package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, cfg Config) (*miniredis.Miniredis, *Limiter) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, New(client, cfg)
}

func TestLimiterTripsAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	_, limiter := newTestLimiter(t, Config{MaxAttempts: 3, Cooldown: time.Minute})

	for i := 0; i < 3; i++ {
		if err := limiter.CheckLogin(ctx, "alice@example.com", ""); err != nil {
			t.Fatalf("attempt %d unexpectedly limited: %v", i, err)
		}
		if err := limiter.RecordFailure(ctx, "alice@example.com", ""); err != nil {
			t.Fatalf("RecordFailure %d: %v", i, err)
		}
	}

	if err := limiter.CheckLogin(ctx, "alice@example.com", ""); !errors.Is(err, ErrLimited) {
		t.Fatalf("expected ErrLimited, got %v", err)
	}

	// Other accounts are unaffected.
	if err := limiter.CheckLogin(ctx, "bob@example.com", ""); err != nil {
		t.Fatalf("unrelated account limited: %v", err)
	}
}

func TestLimiterResetClearsBudget(t *testing.T) {
	ctx := context.Background()
	_, limiter := newTestLimiter(t, Config{MaxAttempts: 2, Cooldown: time.Minute})

	for i := 0; i < 2; i++ {
		if err := limiter.RecordFailure(ctx, "alice@example.com", ""); err != nil {
			t.Fatalf("RecordFailure: %v", err)
		}
	}
	if err := limiter.CheckLogin(ctx, "alice@example.com", ""); !errors.Is(err, ErrLimited) {
		t.Fatalf("expected ErrLimited before reset, got %v", err)
	}

	if err := limiter.Reset(ctx, "alice@example.com", ""); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := limiter.CheckLogin(ctx, "alice@example.com", ""); err != nil {
		t.Fatalf("expected clean budget after reset, got %v", err)
	}
}

func TestLimiterWindowExpires(t *testing.T) {
	ctx := context.Background()
	mr, limiter := newTestLimiter(t, Config{MaxAttempts: 1, Cooldown: time.Minute})

	if err := limiter.RecordFailure(ctx, "alice@example.com", ""); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if err := limiter.CheckLogin(ctx, "alice@example.com", ""); !errors.Is(err, ErrLimited) {
		t.Fatalf("expected ErrLimited, got %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if err := limiter.CheckLogin(ctx, "alice@example.com", ""); err != nil {
		t.Fatalf("expected budget back after cooldown, got %v", err)
	}
}

func TestLimiterIPThrottle(t *testing.T) {
	ctx := context.Background()
	_, limiter := newTestLimiter(t, Config{MaxAttempts: 2, Cooldown: time.Minute, EnableIPThrottle: true})

	// Same IP hammering different accounts still exhausts the IP budget.
	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := limiter.RecordFailure(ctx, email, "203.0.113.9"); err != nil {
			t.Fatalf("RecordFailure(%s): %v", email, err)
		}
	}

	if err := limiter.CheckLogin(ctx, "c@example.com", "203.0.113.9"); !errors.Is(err, ErrLimited) {
		t.Fatalf("expected IP budget exhausted, got %v", err)
	}
	if err := limiter.CheckLogin(ctx, "c@example.com", "198.51.100.1"); err != nil {
		t.Fatalf("other IP should be clean, got %v", err)
	}
}

func TestLimiterUnavailable(t *testing.T) {
	mr, limiter := newTestLimiter(t, Config{MaxAttempts: 2, Cooldown: time.Minute})
	mr.Close()

	err := limiter.RecordFailure(context.Background(), "alice@example.com", "")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
