// Package config reads the settings of a contract test run.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/scooter-qa/courier-contract-tests/framework"
	"github.com/scooter-qa/courier-contract-tests/scooterapi"
)

const (
	// DefaultBaseURL is the training deployment of the service.
	DefaultBaseURL = "https://qa-scooter.praktikum-services.ru"

	// DefaultEnvFile is read before the environment, if it exists.
	DefaultEnvFile = ".env"

	EnvBaseURL = "SCOOTER_BASE_URL"
	EnvTimeout = "SCOOTER_TIMEOUT"
	EnvSeed    = "SCOOTER_SEED"
)

// Config stores the settings of one run of the harness.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Seed       int64
	HasSeed    bool
	Filters    framework.RegexFilters
	Debug      bool
	DebugAll   bool
	RequestIDs bool
	NoColor    bool
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: scooterapi.DefaultTimeout,
	}
}

// ErrHelp is returned by Load when the user asked for usage text.
var ErrHelp = pflag.ErrHelp

// Load reads configuration in order: .env (if present) → environment → flags. The args do
// not include the program name.
func Load(args []string, usageOut io.Writer) (Config, error) {
	return load(DefaultEnvFile, args, usageOut)
}

func load(envFile string, args []string, usageOut io.Writer) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading %s: %w", envFile, err)
	}

	cfg := Default()
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		cfg.Seed, cfg.HasSeed = seed, true
	}

	flags := pflag.NewFlagSet("courier-contract-tests", pflag.ContinueOnError)
	flags.SetOutput(usageOut)
	flags.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of the service under test")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout for each HTTP request")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for generated test data (random if not set)")
	flags.Var(&cfg.Filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	flags.Var(&cfg.Filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	flags.BoolVar(&cfg.Debug, "debug", false, "enable debug logging for failed tests")
	flags.BoolVar(&cfg.DebugAll, "debug-all", false, "enable debug logging for all tests")
	flags.BoolVar(&cfg.RequestIDs, "request-ids", false, "send an X-Request-Id header with every request")
	flags.BoolVar(&cfg.NoColor, "no-color", false, "disable coloured output")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if flags.Changed("seed") {
		cfg.HasSeed = true
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	return nil
}
