package cookieauth

import (
	"fmt"
	"time"
)

// Config is the full engine configuration tree. Zero values are not
// usable; start from [DefaultConfig] and override fields, or load from
// the environment with [LoadConfig].
type Config struct {
	Session  SessionConfig
	Password PasswordConfig
	Security SecurityConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

// SessionConfig controls session lifetime and the cookie the engine
// issues.
type SessionConfig struct {
	// TTL is the absolute lifetime granted on creation and on each
	// sliding renewal.
	TTL time.Duration

	// RenewalWindow is how close to expiry a validated session gets its
	// lifetime extended. Zero means TTL / 3.
	RenewalWindow time.Duration

	// CookieName is the session cookie name.
	CookieName string

	// CookiePath defaults to "/".
	CookiePath string

	// SecureCookies marks the cookie Secure. Leave on outside of local
	// plain-HTTP development.
	SecureCookies bool

	// Persistent gives the cookie a Max-Age matching the session expiry.
	// When false the cookie is a browser-session cookie and the server
	// expiry still applies.
	Persistent bool

	// RedisPrefix namespaces all session keys when the Redis store is
	// used.
	RedisPrefix string
}

// PasswordConfig controls the argon2id KDF and the local password
// policy.
type PasswordConfig struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32

	// MinLength is the only password rule the engine enforces.
	MinLength int

	// RehashOnLogin transparently upgrades stored hashes to the current
	// parameters after a successful password check.
	RehashOnLogin bool
}

// SecurityConfig controls login throttling. Throttling needs the Redis
// client from [Builder.WithRedis].
type SecurityConfig struct {
	EnableLoginThrottle bool
	MaxLoginAttempts    int
	LoginCooldown       time.Duration

	// EnableIPThrottle additionally counts failures per source address,
	// read from [WithClientIP].
	EnableIPThrottle bool
}

// AuditConfig controls the asynchronous audit event stream.
type AuditConfig struct {
	Enabled    bool
	BufferSize int

	// DropIfFull sheds events instead of blocking the request path when
	// the buffer is saturated. Dropped counts are still tracked.
	DropIfFull bool
}

// MetricsConfig controls the in-process counters exposed through
// [Engine.MetricsSnapshot].
type MetricsConfig struct {
	Enabled bool

	// EnableLatencyHistogram records VerifyRequest latency buckets.
	EnableLatencyHistogram bool
}

// DefaultConfig returns production-leaning defaults: a 30-day sliding
// session, 64 MiB argon2id, secure persistent cookies, metrics on,
// throttling and audit off until wired to infrastructure.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			TTL:           30 * 24 * time.Hour,
			RenewalWindow: 0, // derived as TTL / 3
			CookieName:    "auth_session",
			CookiePath:    "/",
			SecureCookies: true,
			Persistent:    true,
			RedisPrefix:   "cookieauth",
		},
		Password: PasswordConfig{
			Memory:        64 * 1024,
			Time:          3,
			Parallelism:   2,
			SaltLength:    16,
			KeyLength:     32,
			MinLength:     8,
			RehashOnLogin: true,
		},
		Security: SecurityConfig{
			EnableLoginThrottle: false,
			MaxLoginAttempts:    5,
			LoginCooldown:       15 * time.Minute,
			EnableIPThrottle:    false,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                true,
			EnableLatencyHistogram: false,
		},
	}
}

// Validate rejects configurations the engine cannot run with. It is
// called by [Builder.Build]; calling it directly is useful for failing
// fast at startup.
func (c Config) Validate() error {
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %v", c.Session.TTL)
	}
	if c.Session.RenewalWindow < 0 {
		return fmt.Errorf("session renewal window must not be negative, got %v", c.Session.RenewalWindow)
	}
	if c.Session.RenewalWindow > c.Session.TTL {
		return fmt.Errorf("session renewal window %v exceeds TTL %v", c.Session.RenewalWindow, c.Session.TTL)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("session cookie name must not be empty")
	}
	if c.Password.MinLength < 1 {
		return fmt.Errorf("password min length must be at least 1, got %d", c.Password.MinLength)
	}
	if c.Security.EnableLoginThrottle {
		if c.Security.MaxLoginAttempts < 1 {
			return fmt.Errorf("max login attempts must be at least 1, got %d", c.Security.MaxLoginAttempts)
		}
		if c.Security.LoginCooldown <= 0 {
			return fmt.Errorf("login cooldown must be positive, got %v", c.Security.LoginCooldown)
		}
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 1 {
		return fmt.Errorf("audit buffer size must be at least 1, got %d", c.Audit.BufferSize)
	}
	return nil
}
