package cookieauth

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero TTL", func(c *Config) { c.Session.TTL = 0 }},
		{"negative renewal window", func(c *Config) { c.Session.RenewalWindow = -time.Hour }},
		{"window exceeds TTL", func(c *Config) {
			c.Session.TTL = time.Hour
			c.Session.RenewalWindow = 2 * time.Hour
		}},
		{"empty cookie name", func(c *Config) { c.Session.CookieName = "" }},
		{"zero password min length", func(c *Config) { c.Password.MinLength = 0 }},
		{"throttle without attempts", func(c *Config) {
			c.Security.EnableLoginThrottle = true
			c.Security.MaxLoginAttempts = 0
		}},
		{"throttle without cooldown", func(c *Config) {
			c.Security.EnableLoginThrottle = true
			c.Security.LoginCooldown = 0
		}},
		{"audit without buffer", func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.BufferSize = 0
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := DefaultConfig()
	if cfg.Session.TTL != want.Session.TTL {
		t.Fatalf("TTL = %v, want %v", cfg.Session.TTL, want.Session.TTL)
	}
	if cfg.Session.CookieName != want.Session.CookieName {
		t.Fatalf("cookie name = %q, want %q", cfg.Session.CookieName, want.Session.CookieName)
	}
	if cfg.Password.Memory != want.Password.Memory {
		t.Fatalf("argon2 memory = %d, want %d", cfg.Password.Memory, want.Password.Memory)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("COOKIEAUTH_SESSION_TTL", "48h")
	t.Setenv("COOKIEAUTH_COOKIE_NAME", "sid")
	t.Setenv("COOKIEAUTH_COOKIE_SECURE", "false")
	t.Setenv("COOKIEAUTH_LOGIN_THROTTLE", "true")
	t.Setenv("COOKIEAUTH_MAX_LOGIN_ATTEMPTS", "7")
	t.Setenv("COOKIEAUTH_LOGIN_COOLDOWN", "30s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Session.TTL != 48*time.Hour {
		t.Fatalf("TTL = %v, want 48h", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "sid" {
		t.Fatalf("cookie name = %q, want sid", cfg.Session.CookieName)
	}
	if cfg.Session.SecureCookies {
		t.Fatal("secure cookies should be off")
	}
	if !cfg.Security.EnableLoginThrottle || cfg.Security.MaxLoginAttempts != 7 || cfg.Security.LoginCooldown != 30*time.Second {
		t.Fatalf("throttle config not applied: %+v", cfg.Security)
	}
}

func TestLoadConfigRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("COOKIEAUTH_SESSION_TTL", "0s")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected validation error for zero TTL")
	}
}
