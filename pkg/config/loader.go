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

// entry holds the parsed value of one config type.
type entry struct {
	mu     sync.Mutex
	loaded bool
	value  any
}

var (
	cache         sync.Map // reflect.Type -> *entry
	dotenvOnce    sync.Once
	dotenvFiles   = []string{".env"}
	dotenvFilesMu sync.Mutex
)

// UseEnvFiles replaces the dotenv files read before the first Load.
// Files that do not exist are skipped. It has no effect after the first Load.
func UseEnvFiles(files ...string) {
	dotenvFilesMu.Lock()
	defer dotenvFilesMu.Unlock()
	dotenvFiles = files
}

// LoadEnvFiles reads the given dotenv files into the process environment
// without overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", f, err))
		}
	}
	return nil
}

// Load parses environment variables into v using `env` struct tags.
// Each config type is parsed once; later calls copy the cached value.
// A failed parse is not cached, so the next call retries.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		dotenvFilesMu.Lock()
		files := dotenvFiles
		dotenvFilesMu.Unlock()
		_ = LoadEnvFiles(files...)
	})

	key := reflect.TypeFor[T]()
	raw, _ := cache.LoadOrStore(key, &entry{})
	e := raw.(*entry)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			return errors.Join(ErrParsingConfig, err)
		}
		e.value = parsed
		e.loaded = true
	}

	*v = e.value.(T)
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Reset drops every cached config so the next Load parses the environment again.
func Reset() {
	cache.Clear()
}
