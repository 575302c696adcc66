package cookieauth

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envConfig mirrors Config with flat environment bindings. Defaults here
// must stay in sync with DefaultConfig.
type envConfig struct {
	SessionTTL           time.Duration `env:"COOKIEAUTH_SESSION_TTL" envDefault:"720h"`
	SessionRenewalWindow time.Duration `env:"COOKIEAUTH_SESSION_RENEWAL_WINDOW" envDefault:"0"`
	CookieName           string        `env:"COOKIEAUTH_COOKIE_NAME" envDefault:"auth_session"`
	CookiePath           string        `env:"COOKIEAUTH_COOKIE_PATH" envDefault:"/"`
	SecureCookies        bool          `env:"COOKIEAUTH_COOKIE_SECURE" envDefault:"true"`
	PersistentCookies    bool          `env:"COOKIEAUTH_COOKIE_PERSISTENT" envDefault:"true"`
	RedisPrefix          string        `env:"COOKIEAUTH_REDIS_PREFIX" envDefault:"cookieauth"`

	PasswordMemory      uint32 `env:"COOKIEAUTH_ARGON2_MEMORY" envDefault:"65536"`
	PasswordTime        uint32 `env:"COOKIEAUTH_ARGON2_TIME" envDefault:"3"`
	PasswordParallelism uint8  `env:"COOKIEAUTH_ARGON2_PARALLELISM" envDefault:"2"`
	PasswordSaltLength  uint32 `env:"COOKIEAUTH_ARGON2_SALT_LENGTH" envDefault:"16"`
	PasswordKeyLength   uint32 `env:"COOKIEAUTH_ARGON2_KEY_LENGTH" envDefault:"32"`
	PasswordMinLength   int    `env:"COOKIEAUTH_PASSWORD_MIN_LENGTH" envDefault:"8"`
	RehashOnLogin       bool   `env:"COOKIEAUTH_PASSWORD_REHASH_ON_LOGIN" envDefault:"true"`

	EnableLoginThrottle bool          `env:"COOKIEAUTH_LOGIN_THROTTLE" envDefault:"false"`
	MaxLoginAttempts    int           `env:"COOKIEAUTH_MAX_LOGIN_ATTEMPTS" envDefault:"5"`
	LoginCooldown       time.Duration `env:"COOKIEAUTH_LOGIN_COOLDOWN" envDefault:"15m"`
	EnableIPThrottle    bool          `env:"COOKIEAUTH_IP_THROTTLE" envDefault:"false"`

	AuditEnabled    bool `env:"COOKIEAUTH_AUDIT_ENABLED" envDefault:"false"`
	AuditBufferSize int  `env:"COOKIEAUTH_AUDIT_BUFFER_SIZE" envDefault:"256"`
	AuditDropIfFull bool `env:"COOKIEAUTH_AUDIT_DROP_IF_FULL" envDefault:"true"`

	MetricsEnabled bool `env:"COOKIEAUTH_METRICS_ENABLED" envDefault:"true"`
	LatencyBuckets bool `env:"COOKIEAUTH_METRICS_LATENCY" envDefault:"false"`
}

// LoadConfig builds a Config from the process environment, reading an
// optional .env file first. Unset variables fall back to the
// DefaultConfig values; the result is validated before being returned.
func LoadConfig() (Config, error) {
	// A missing .env file is the normal production case.
	_ = godotenv.Load()

	var e envConfig
	if err := env.Parse(&e); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg := Config{
		Session: SessionConfig{
			TTL:           e.SessionTTL,
			RenewalWindow: e.SessionRenewalWindow,
			CookieName:    e.CookieName,
			CookiePath:    e.CookiePath,
			SecureCookies: e.SecureCookies,
			Persistent:    e.PersistentCookies,
			RedisPrefix:   e.RedisPrefix,
		},
		Password: PasswordConfig{
			Memory:        e.PasswordMemory,
			Time:          e.PasswordTime,
			Parallelism:   e.PasswordParallelism,
			SaltLength:    e.PasswordSaltLength,
			KeyLength:     e.PasswordKeyLength,
			MinLength:     e.PasswordMinLength,
			RehashOnLogin: e.RehashOnLogin,
		},
		Security: SecurityConfig{
			EnableLoginThrottle: e.EnableLoginThrottle,
			MaxLoginAttempts:    e.MaxLoginAttempts,
			LoginCooldown:       e.LoginCooldown,
			EnableIPThrottle:    e.EnableIPThrottle,
		},
		Audit: AuditConfig{
			Enabled:    e.AuditEnabled,
			BufferSize: e.AuditBufferSize,
			DropIfFull: e.AuditDropIfFull,
		},
		Metrics: MetricsConfig{
			Enabled:                e.MetricsEnabled,
			EnableLatencyHistogram: e.LatencyBuckets,
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
