// Package config loads service settings from the environment via Viper.
package config

import (
	"crypto/rand"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"ProductAPI/pkg/kit"
)

type Config struct {
	Port     string
	LogLevel string

	Session SessionConfig
	Pool    PoolConfig
	Seed    SeedConfig
	Metrics MetricsConfig

	BcryptCost      int
	ShutdownTimeout time.Duration
}

type SessionConfig struct {
	// Secret is random per process when SESSION_SECRET is unset; such
	// sessions do not survive a restart.
	Secret       []byte
	SecretIsTemp bool
	TTL          time.Duration
	CookieName   string
	Secure       bool
}

type PoolConfig struct {
	Workers     int
	QueueSize   int
	CreateDelay time.Duration
}

type SeedConfig struct {
	Username string
	Password string
}

type MetricsConfig struct {
	Enabled bool
	Token   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE", "_api_session")
	v.SetDefault("SESSION_SECURE", false)

	v.SetDefault("POOL_WORKERS", kit.MaxPoolWorkers)
	v.SetDefault("POOL_QUEUE_SIZE", kit.DefaultQueueSize)
	v.SetDefault("PRODUCT_CREATE_DELAY", "5s")

	v.SetDefault("DEFAULT_USERNAME", "admin")
	v.SetDefault("DEFAULT_PASSWORD", "password123")

	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_TOKEN", "")

	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load reads the environment. Out-of-range numbers are clamped rather than rejected.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:     v.GetString("PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Session: SessionConfig{
			Secret:     []byte(v.GetString("SESSION_SECRET")),
			TTL:        v.GetDuration("SESSION_TTL"),
			CookieName: v.GetString("SESSION_COOKIE"),
			Secure:     v.GetBool("SESSION_SECURE"),
		},
		Pool: PoolConfig{
			Workers:     clamp(v.GetInt("POOL_WORKERS"), kit.MinPoolWorkers, kit.MaxPoolWorkers),
			QueueSize:   v.GetInt("POOL_QUEUE_SIZE"),
			CreateDelay: v.GetDuration("PRODUCT_CREATE_DELAY"),
		},
		Seed: SeedConfig{
			Username: v.GetString("DEFAULT_USERNAME"),
			Password: v.GetString("DEFAULT_PASSWORD"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Token:   v.GetString("METRICS_TOKEN"),
		},
		BcryptCost:      clamp(v.GetInt("BCRYPT_COST"), bcrypt.MinCost, bcrypt.MaxCost),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if cfg.Pool.QueueSize <= 0 {
		cfg.Pool.QueueSize = kit.DefaultQueueSize
	}
	if cfg.Pool.CreateDelay < 0 {
		cfg.Pool.CreateDelay = 0
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 24 * time.Hour
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	if len(cfg.Session.Secret) == 0 {
		secret := make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
		cfg.Session.Secret = secret
		cfg.Session.SecretIsTemp = true
	}

	return cfg, nil
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}
