package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	dotenvErr  error
	cache      sync.Map // reflect.Type -> loaded value
)

// EnvFiles are loaded once before the first parse. Missing files are
// ignored; variables already in the environment win.
var EnvFiles = []string{".env"}

func loadDotenv() error {
	dotenvOnce.Do(func() {
		for _, f := range EnvFiles {
			if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
				dotenvErr = fmt.Errorf("config: load %s: %w", f, err)
				return
			}
		}
	})
	return dotenvErr
}

// Load fills cfg from the environment. Each type is parsed once; later
// calls for the same type copy the cached value.
func Load[T any](cfg *T) error {
	key := reflect.TypeFor[T]()
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	if err := loadDotenv(); err != nil {
		return err
	}
	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	v, _ := cache.LoadOrStore(key, fresh)
	*cfg = v.(T)
	return nil
}

// MustLoad is Load that panics on error. Meant for process startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse fills cfg from the environment without caching.
func Parse[T any](cfg *T) error {
	if err := loadDotenv(); err != nil {
		return err
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
