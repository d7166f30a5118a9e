package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/etnz/wallet"
	"github.com/joho/godotenv"
)

// Environment variables read by wallet, and passed to extensions.
const (
	EnvStoragePath = "PATH_TO_FILE"
	EnvCurrency    = "WALLET_CURRENCY"
	EnvLogLevel    = "WALLET_LOG_LEVEL"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "USD"

// ErrNoStoragePath is returned when no storage file is configured.
var ErrNoStoragePath = errors.New(EnvStoragePath + " is not set")

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables for flags.
// They are only read once, by LoadConfig.

var envFile = flag.String("env", ".env", "Path to a .env file to load environment variables from")
var storageFile = flag.String("file", "", "Path to the storage file, overrides "+EnvStoragePath)
var currency = flag.String("currency", "", "ISO code of the currency used to display amounts, overrides "+EnvCurrency)
var Verbose = flag.Bool("v", false, "Enable debug logging")

// Config is the resolved configuration, built once at startup and handed to
// the commands.
type Config struct {
	StoragePath string // path to the storage file
	Currency    string // ISO currency code
	LogLevel    string // debug, info, warn or error
}

// Level returns the slog level for c.LogLevel.
func (c Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

// Environ returns c as environment variables, in os.Environ format.
func (c Config) Environ() []string {
	return []string{
		EnvStoragePath + "=" + c.StoragePath,
		EnvCurrency + "=" + c.Currency,
		EnvLogLevel + "=" + c.LogLevel,
	}
}

// LoadConfig loads the -env file into the process environment, then resolves
// the configuration from the flags and the environment.
func LoadConfig() (Config, error) {
	if err := loadEnv(*envFile); err != nil {
		return Config{}, err
	}
	overrides := Config{StoragePath: *storageFile, Currency: *currency}
	if *Verbose {
		overrides.LogLevel = "debug"
	}
	return ResolveConfig(overrides, os.LookupEnv)
}

// loadEnv loads file with godotenv. Variables already set are kept. A missing
// file is not an error.
func loadEnv(file string) error {
	if file == "" {
		return nil
	}
	if err := godotenv.Load(file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no env file", "file", file)
			return nil
		}
		return fmt.Errorf("could not load env file %q: %w", file, err)
	}
	slog.Debug("loaded env file", "file", file)
	return nil
}

// ResolveConfig builds a Config: non empty fields of overrides win, then
// variables found with lookup, then defaults.
func ResolveConfig(overrides Config, lookup func(string) (string, bool)) (Config, error) {
	pick := func(override, env, fallback string) string {
		if v := strings.TrimSpace(override); v != "" {
			return v
		}
		if v, ok := lookup(env); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}
	cfg := Config{
		StoragePath: pick(overrides.StoragePath, EnvStoragePath, ""),
		Currency:    strings.ToUpper(pick(overrides.Currency, EnvCurrency, DefaultCurrency)),
		LogLevel:    strings.ToLower(pick(overrides.LogLevel, EnvLogLevel, "warn")),
	}
	if cfg.StoragePath == "" {
		return cfg, ErrNoStoragePath
	}
	if !wallet.KnownCurrency(cfg.Currency) {
		return cfg, fmt.Errorf("unknown currency %q", cfg.Currency)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q, want debug, info, warn or error", s)
	}
}

// configFrom returns the configuration passed to Execute by main, as
// commander.Execute(ctx, cfg, err).
func configFrom(args []any) (Config, error) {
	if len(args) > 1 {
		if err, ok := args[1].(error); ok && err != nil {
			return Config{}, fmt.Errorf("configuration error: %w", err)
		}
	}
	if len(args) > 0 {
		if cfg, ok := args[0].(Config); ok {
			return cfg, nil
		}
	}
	return Config{}, errors.New("configuration error: no configuration")
}

// openStore opens the configured store.
func openStore(args []any) (Config, *wallet.Store, error) {
	cfg, err := configFrom(args)
	if err != nil {
		return cfg, nil, err
	}
	store, err := wallet.Open(cfg.StoragePath)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, store, nil
}
