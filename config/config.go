// Package config loads the fin configuration from a YAML file, a .env file
// and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/finances"
	"github.com/etnz/finances/forex"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file used when none is given.
const DefaultFile = "fin.yaml"

// Config is the fin configuration.
type Config struct {
	User              string `yaml:"user"`
	Book              string `yaml:"book"`
	ReferenceCurrency string `yaml:"reference_currency"`
	Rates             Rates  `yaml:"rates"`
}

// Rates configures the exchange rate provider and its store.
type Rates struct {
	Endpoint     string        `yaml:"endpoint"`
	AccessKey    string        `yaml:"access_key"`
	BaseCurrency string        `yaml:"base_currency"`
	Freshness    time.Duration `yaml:"freshness"`
	Store        string        `yaml:"store"` // Store is a SQLite path, quotes are kept in memory if empty.
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		User:              "default",
		Book:              "book.jsonl",
		ReferenceCurrency: "EUR",
		Rates: Rates{
			Endpoint:     forex.DefaultEndpoint,
			BaseCurrency: "USD",
			Freshness:    forex.DefaultFreshness,
		},
	}
}

// Load reads the configuration file at path, if it exists, then applies the
// FIN_* environment variables. A .env file in the current directory is loaded
// into the environment first.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("cannot read config %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("invalid config %q: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.ReferenceCurrency = strings.ToUpper(cfg.ReferenceCurrency)
	cfg.Rates.BaseCurrency = strings.ToUpper(cfg.Rates.BaseCurrency)
	return cfg, nil
}

func (c *Config) applyEnv() error {
	for env, field := range map[string]*string{
		"FIN_USER":             &c.User,
		"FIN_BOOK":             &c.Book,
		"FIN_CURRENCY":         &c.ReferenceCurrency,
		"FIN_RATES_ENDPOINT":   &c.Rates.Endpoint,
		"FIN_RATES_ACCESS_KEY": &c.Rates.AccessKey,
		"FIN_RATES_BASE":       &c.Rates.BaseCurrency,
		"FIN_RATES_STORE":      &c.Rates.Store,
	} {
		if v, ok := os.LookupEnv(env); ok {
			*field = v
		}
	}
	if v, ok := os.LookupEnv("FIN_RATES_FRESHNESS"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FIN_RATES_FRESHNESS: %w", err)
		}
		c.Rates.Freshness = d
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs error
	if c.User == "" {
		errs = errors.Join(errs, errors.New("user is missing"))
	}
	if c.Book == "" {
		errs = errors.Join(errs, errors.New("book is missing"))
	}
	if err := finances.ValidateCurrency(c.ReferenceCurrency); err != nil {
		errs = errors.Join(errs, fmt.Errorf("reference_currency: %w", err))
	}
	if err := finances.ValidateCurrency(c.Rates.BaseCurrency); err != nil {
		errs = errors.Join(errs, fmt.Errorf("rates.base_currency: %w", err))
	}
	if c.Rates.Freshness < 0 {
		errs = errors.Join(errs, errors.New("rates.freshness must not be negative"))
	}
	return errs
}
