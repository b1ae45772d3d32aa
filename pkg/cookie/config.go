package cookie

import (
	"net/http"
	"strings"
)

// Config is the environment-driven cookie configuration.
// COOKIE_SECRETS is a comma separated list; the first entry signs.
type Config struct {
	Secrets  string        `env:"COOKIE_SECRETS"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // Lax
}

// SecretList splits Secrets on commas, dropping blanks.
func (c Config) SecretList() []string {
	var secrets []string
	for _, s := range strings.Split(c.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}

// NewFromConfig creates a Manager from cfg; explicit opts win.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	configOpts := make([]Option, 0, 3+len(opts))
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.Secure {
		configOpts = append(configOpts, WithSecure(true))
	}
	if cfg.SameSite != 0 {
		configOpts = append(configOpts, WithSameSite(cfg.SameSite))
	}
	return New(cfg.SecretList(), append(configOpts, opts...)...)
}
