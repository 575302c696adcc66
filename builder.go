package cookieauth

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/finchrelia/cookieauth/internal/audit"
	"github.com/finchrelia/cookieauth/internal/metrics"
	"github.com/finchrelia/cookieauth/internal/rate"
	"github.com/finchrelia/cookieauth/password"
	"github.com/finchrelia/cookieauth/session"
)

// Builder assembles an [Engine]. A user directory is mandatory; a
// session store is taken explicitly or derived from a Redis client.
//
//	eng, err := cookieauth.New().
//		WithConfig(cfg).
//		WithRedis(client).
//		WithUserDirectory(dir).
//		Build()
type Builder struct {
	config       Config
	redis        redis.UniversalClient
	directory    UserDirectory
	sessionStore session.Store
	auditSink    AuditSink
	logger       *slog.Logger
}

// New starts a builder with [DefaultConfig].
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the entire configuration tree.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis supplies the Redis client used for the default session store
// and for login throttling.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserDirectory supplies the account persistence port. Required.
func (b *Builder) WithUserDirectory(dir UserDirectory) *Builder {
	b.directory = dir
	return b
}

// WithSessionStore overrides the session store. When set, the Redis
// client is only used for throttling.
func (b *Builder) WithSessionStore(store session.Store) *Builder {
	b.sessionStore = store
	return b
}

// WithAuditSink supplies the audit destination. Ignored unless
// Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger supplies the structured logger. Defaults to slog.Default.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// Build validates the configuration, wires all components, and
// precomputes the decoy hash used for unknown-account logins. The
// returned engine is ready for concurrent use.
func (b *Builder) Build() (*Engine, error) {
	if err := b.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if b.directory == nil {
		return nil, errors.New("user directory is required, call WithUserDirectory")
	}

	store := b.sessionStore
	if store == nil {
		if b.redis == nil {
			return nil, errors.New("session store required, call WithSessionStore or WithRedis")
		}
		store = session.NewRedisStore(b.redis, b.config.Session.RedisPrefix)
	}

	manager, err := session.NewManager(store, session.Config{
		TTL:           b.config.Session.TTL,
		RenewalWindow: b.config.Session.RenewalWindow,
		Cookie: session.CookieConfig{
			Name:       b.config.Session.CookieName,
			Path:       b.config.Session.CookiePath,
			Secure:     b.config.Session.SecureCookies,
			Persistent: b.config.Session.Persistent,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}

	hasher, err := password.New(password.Config{
		Memory:      b.config.Password.Memory,
		Time:        b.config.Password.Time,
		Parallelism: b.config.Password.Parallelism,
		SaltLength:  b.config.Password.SaltLength,
		KeyLength:   b.config.Password.KeyLength,
	})
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	// The decoy hash keeps login timing flat when the email is unknown.
	dummyHash, err := hasher.DummyHash()
	if err != nil {
		return nil, fmt.Errorf("decoy hash: %w", err)
	}

	var limiter *rate.Limiter
	if b.config.Security.EnableLoginThrottle {
		if b.redis == nil {
			return nil, errors.New("login throttling requires a Redis client, call WithRedis")
		}
		limiter = rate.New(b.redis, rate.Config{
			MaxAttempts:      b.config.Security.MaxLoginAttempts,
			Cooldown:         b.config.Security.LoginCooldown,
			EnableIPThrottle: b.config.Security.EnableIPThrottle,
		})
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		config:    b.config,
		directory: b.directory,
		sessions:  manager,
		hasher:    hasher,
		dummyHash: dummyHash,
		limiter:   limiter,
		audit: audit.NewDispatcher(audit.Config{
			Enabled:    b.config.Audit.Enabled,
			BufferSize: b.config.Audit.BufferSize,
			DropIfFull: b.config.Audit.DropIfFull,
		}, b.auditSink),
		metrics: metrics.New(metrics.Config{
			Enabled:       b.config.Metrics.Enabled,
			EnableLatency: b.config.Metrics.EnableLatencyHistogram,
		}),
		logger: logger.With(slog.String("component", "cookieauth")),
	}, nil
}
