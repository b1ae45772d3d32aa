// Package environment carries the deployment environment through request contexts.
package environment

import (
	"context"
	"strings"
)

// Environment names a deployment stage.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Normalize maps short aliases ("dev", "stage", "prod") and case variants onto
// the canonical names. Unknown values fall back to Development.
func (e Environment) Normalize() Environment {
	switch strings.ToLower(strings.TrimSpace(string(e))) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	default:
		return Development
	}
}

func (e Environment) IsProduction() bool  { return e.Normalize() == Production }
func (e Environment) IsDevelopment() bool { return e.Normalize() == Development }

type contextKey struct{}

// WithContext stores env in ctx.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env.Normalize())
}

// FromContext returns the stored environment, or "" when none is set.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction reports whether ctx carries the production environment.
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}
