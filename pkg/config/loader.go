// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is applied once before the first load;
// variables already present in the environment win. Struct fields are mapped
// with caarlos0/env tags:
//
//	type Config struct {
//		BackendURL string        `env:"BACKEND_URL,required"`
//		Refresh    time.Duration `env:"TRACKING_REFRESH_INTERVAL" envDefault:"30s"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]any)

	dotenvOnce sync.Once
)

func loadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load fills v from the environment. The first successful load of a type is
// cached and later calls for the same type return the cached copy.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	key := reflect.TypeFor[T]()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := Parse(v); err != nil {
		return err
	}
	cache[key] = *v
	return nil
}

// Parse fills v from the environment without caching.
func Parse[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDotenv()
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load that panics on failure. Use it in main.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
