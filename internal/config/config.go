package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Config holds everything tunable about the service. Values come from an
// optional YAML file, then environment variables override field by field.
type Config struct {
	Port string `yaml:"port"`

	// SessionTTL is the absolute lifetime of an internal session token.
	// Sessions are never renewed on read.
	SessionTTL    time.Duration `yaml:"-"`
	SweepInterval time.Duration `yaml:"-"`

	// Identity provider exchange endpoint and call deadline.
	ProviderEndpoint string        `yaml:"provider_endpoint"`
	ProviderTimeout  time.Duration `yaml:"-"`

	// AdminEmails are promoted to role=admin on first login.
	AdminEmails []string `yaml:"admin_emails"`

	CORSOrigins []string `yaml:"cors_origins"`

	// Per-user request budget and per-IP login budget, both req/min.
	GeneralRatePerMin int `yaml:"general_rate_per_min"`
	GeneralBurst      int `yaml:"general_burst"`
	LoginRatePerMin   int `yaml:"login_rate_per_min"`
	LoginBurst        int `yaml:"login_burst"`

	// Raw duration strings from YAML; parsed into the fields above.
	SessionTTLRaw      string `yaml:"session_ttl"`
	SweepIntervalRaw   string `yaml:"sweep_interval"`
	ProviderTimeoutRaw string `yaml:"provider_timeout"`
}

func defaults() Config {
	return Config{
		Port:              "5050",
		SessionTTL:        7 * 24 * time.Hour,
		SweepInterval:     time.Hour,
		ProviderTimeout:   10 * time.Second,
		GeneralRatePerMin: 120,
		GeneralBurst:      120,
		LoginRatePerMin:   10,
		LoginBurst:        10,
	}
}

// Load reads the YAML file named by CONFIG_FILE (default config.yaml, absence
// is not an error), then applies environment overrides.
func Load() (Config, error) {
	cfg := defaults()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.parseDurations(); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) parseDurations() error {
	pairs := []struct {
		raw  string
		dst  *time.Duration
		name string
	}{
		{c.SessionTTLRaw, &c.SessionTTL, "session_ttl"},
		{c.SweepIntervalRaw, &c.SweepInterval, "sweep_interval"},
		{c.ProviderTimeoutRaw, &c.ProviderTimeout, "provider_timeout"},
	}
	for _, p := range pairs {
		if p.raw == "" {
			continue
		}
		d, err := time.ParseDuration(p.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", p.name, p.raw, err)
		}
		*p.dst = d
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("PROVIDER_ENDPOINT"); v != "" {
		c.ProviderEndpoint = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.SessionTTL = d
		}
	}
	if v := os.Getenv("PROVIDER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ProviderTimeout = d
		}
	}
	if v := os.Getenv("ADMIN_EMAILS"); v != "" {
		c.AdminEmails = splitList(v)
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks that the configuration can actually run a server.
func (c Config) Validate() error {
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("provider_timeout must be positive, got %s", c.ProviderTimeout)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive, got %s", c.SweepInterval)
	}
	if c.GeneralRatePerMin <= 0 || c.LoginRatePerMin <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	return nil
}

// IsAdminEmail reports whether email should receive role=admin on first login.
func (c Config) IsAdminEmail(email string) bool {
	for _, e := range c.AdminEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}
