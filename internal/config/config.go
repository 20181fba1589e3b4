// Package config reads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

type Config struct {
	// DBPath is the SQLite file. Empty means ~/.blueprint/blueprint.db.
	DBPath       string        `env:"BLUEPRINT_DB"`
	LogCalls     bool          `env:"BLUEPRINT_LOG_CALLS" envDefault:"false"`
	CacheTTL     time.Duration `env:"BLUEPRINT_CACHE_TTL" envDefault:"15m"`
	CacheCleanup time.Duration `env:"BLUEPRINT_CACHE_CLEANUP" envDefault:"30m"`
	Locale       string        `env:"BLUEPRINT_LOCALE" envDefault:"en"`
	NoColor      bool          `env:"BLUEPRINT_NO_COLOR"`
}

// Load reads the process environment, filling gaps from the given dotenv
// files (DefaultEnvFile when none are named). Variables already set in the
// environment win over file values, and missing files are skipped.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	return load(environMap(os.Environ()), files)
}

func load(environ map[string]string, files []string) (Config, error) {
	for _, f := range files {
		values, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range values {
			if _, set := environ[k]; !set {
				environ[k] = v
			}
		}
	}
	return Parse(environ)
}

// Parse builds a Config from an explicit variable set.
func Parse(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.CacheTTL <= 0 {
		return fmt.Errorf("BLUEPRINT_CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.CacheCleanup <= 0 {
		return fmt.Errorf("BLUEPRINT_CACHE_CLEANUP must be positive, got %s", c.CacheCleanup)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("BLUEPRINT_LOCALE %q: %w", c.Locale, err)
	}
	return nil
}

// Language is the locale used for number formatting.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// ResolveDBPath returns DBPath, defaulting to a file under the user's home.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".blueprint", "blueprint.db"), nil
}

func environMap(pairs []string) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			out[k] = v
		}
	}
	return out
}
