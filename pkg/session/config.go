package session

import "time"

// Config is the environment-driven session configuration.
type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"mt_sid"`
	// Store selects the backend: memory or redis.
	Store string `env:"SESSION_STORE" envDefault:"memory"`

	IdleTimeout             time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"24h"`
	ActivityUpdateThreshold time.Duration `env:"SESSION_ACTIVITY_UPDATE_THRESHOLD" envDefault:"5m"`
	CleanupInterval         time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

func DefaultConfig() Config {
	return Config{
		CookieName:              "mt_sid",
		Store:                   "memory",
		IdleTimeout:             24 * time.Hour,
		ActivityUpdateThreshold: 5 * time.Minute,
		CleanupInterval:         5 * time.Minute,
	}
}
