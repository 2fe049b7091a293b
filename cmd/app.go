// Package cmd implements the CLI application to manage personal finances.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/finances"
	"github.com/etnz/finances/cache"
	"github.com/etnz/finances/config"
	"github.com/etnz/finances/forex"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&validateCmd{}, "transactions")
	c.Register(&recordCmd{}, "transactions")
	c.Register(&deleteCmd{}, "transactions")

	c.Register(&ledgerCmd{}, "reports")
	c.Register(&balancesCmd{}, "reports")
	c.Register(&ratesCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultFile, "Path to the configuration file (YAML format)")
var bookFile = flag.String("book", "", "Path to the book file (JSONL format), overrides the configuration")
var currency = flag.String("currency", "", "Reference currency, overrides the configuration")
var verbose = flag.Bool("v", false, "Verbose logging")

// ledgers memoises the ledger lines computed during this run.
var ledgers = cache.New(10 * time.Minute)

// SetupLogging configures the global logger, it must be called after the flags are parsed.
func SetupLogging() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// loadConfig loads the configuration file and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *bookFile != "" {
		cfg.Book = *bookFile
	}
	if *currency != "" {
		cfg.ReferenceCurrency = *currency
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DecodeBook decodes the book of the configured user. A missing book file is an empty book.
func DecodeBook(cfg *config.Config) (*finances.Book, error) {
	f, err := os.Open(cfg.Book)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("book", cfg.Book).Msg("book does not exist, starting with an empty book")
		return finances.NewBook(cfg.User, ledgers), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	book, err := finances.DecodeBook(f, cfg.User, ledgers)
	if err != nil {
		return nil, fmt.Errorf("cannot decode book %q: %w", cfg.Book, err)
	}
	return book, nil
}

// EncodeBook rewrites the book file of the configured user.
func EncodeBook(cfg *config.Config, book *finances.Book) error {
	tmp, err := os.CreateTemp(filepath.Dir(cfg.Book), ".book-*.jsonl")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := finances.EncodeBook(tmp, book); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), cfg.Book)
}

// openRates returns the rate service of the configuration, and a function to release it.
func openRates(cfg *config.Config) (*forex.Rates, func(), error) {
	var store forex.Store = forex.NewMemoryStore()
	release := func() {}
	if cfg.Rates.Store != "" {
		s, err := forex.OpenSQLite(cfg.Rates.Store)
		if err != nil {
			return nil, nil, err
		}
		store = s
		release = func() { s.Close() }
	}
	rates := forex.NewRates(cfg.Rates.BaseCurrency, forex.NewClient(cfg.Rates.Endpoint, cfg.Rates.AccessKey), store)
	rates.Freshness = cfg.Rates.Freshness
	return rates, release, nil
}

// readTransactionInput reads a transaction in JSON format from file, or from stdin if file is "-".
func readTransactionInput(file string) (finances.TransactionInput, error) {
	var in finances.TransactionInput
	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return in, err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return in, fmt.Errorf("cannot read transaction %q: %w", file, err)
	}
	return in, nil
}

// printMarkdown displays md on the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Debug().Err(err).Msg("cannot render markdown")
		out = md
	}
	fmt.Print(out)
}
