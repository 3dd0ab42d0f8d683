package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

type Config struct {
	Server     string        `env:"PIZZA_SERVER" envDefault:"https://kinto.dev.mozaws.net/v1"`
	Bucket     string        `env:"PIZZA_BUCKET" envDefault:"default"`
	Collection string        `env:"PIZZA_COLLECTION" envDefault:"pizzas"`
	StateDir   string        `env:"PIZZA_STATE_DIR"`
	Store      string        `env:"PIZZA_STORE" envDefault:"json"`
	Timeout    time.Duration `env:"PIZZA_TIMEOUT" envDefault:"10s"`
	Theme      string        `env:"PIZZA_THEME" envDefault:"classic"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
}

// New reads .env (if any), then the environment, then flags from args.
// A flag that is set wins over the environment.
func New(args []string) (*Config, []string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, nil, fmt.Errorf("parse env: %w", err)
	}

	rest, err := cfg.parseFlags(args)
	if err != nil {
		return nil, nil, err
	}

	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("home: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".pizza")
	}
	if cfg.Store != StoreJSON && cfg.Store != StoreSQLite {
		return nil, nil, fmt.Errorf("unknown store %q (want %s or %s)", cfg.Store, StoreJSON, StoreSQLite)
	}
	if cfg.Timeout <= 0 {
		return nil, nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return cfg, rest, nil
}

func (c *Config) parseFlags(args []string) ([]string, error) {
	fs := flag.NewFlagSet("pizza", flag.ContinueOnError)
	fs.StringVar(&c.Server, "server", c.Server, "default order store address")
	fs.StringVar(&c.Bucket, "bucket", c.Bucket, "Kinto bucket")
	fs.StringVar(&c.Collection, "collection", c.Collection, "Kinto collection")
	fs.StringVar(&c.StateDir, "state-dir", c.StateDir, "where the session and draft are kept (default ~/.pizza)")
	fs.StringVar(&c.Store, "store", c.Store, "local state backend: json or sqlite")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "request timeout")
	fs.StringVar(&c.Theme, "theme", c.Theme, "classic, neon or mono")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}
