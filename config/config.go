package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ScrapeHTTP    = "http"
	ScrapeBrowser = "browser"
	ScrapeOff     = "off"
)

// Config is the runtime configuration for both the server and the CLI.
type Config struct {
	Port      string `yaml:"port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	HTTPTimeout time.Duration `yaml:"http_timeout"`
	ProxyURL    string        `yaml:"proxy_url"`
	UserAgent   string        `yaml:"user_agent"`

	MaxAttempts   int           `yaml:"max_attempts"`
	RetryMinDelay time.Duration `yaml:"retry_min_delay"`
	RetryMaxDelay time.Duration `yaml:"retry_max_delay"`

	ScrapeMode string `yaml:"scrape_mode"`
	ChromeBin  string `yaml:"chrome_bin"`

	BatchWorkers int `yaml:"batch_workers"`
	BatchMaxSize int `yaml:"batch_max_size"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Port:          "8000",
		LogLevel:      "info",
		LogFormat:     "json",
		HTTPTimeout:   15 * time.Second,
		MaxAttempts:   3,
		RetryMinDelay: time.Second,
		RetryMaxDelay: 3 * time.Second,
		ScrapeMode:    ScrapeHTTP,
		BatchWorkers:  4,
		BatchMaxSize:  25,
	}
}

// Load reads defaults, then the YAML file at path (skipped when path is
// empty), then environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
		return nil
	}
	duration := func(key string, dst *time.Duration) error {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
		return nil
	}

	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("PROXY_URL", &c.ProxyURL)
	str("USER_AGENT", &c.UserAgent)
	str("SCRAPE_MODE", &c.ScrapeMode)
	str("CHROME_BIN", &c.ChromeBin)

	return errors.Join(
		duration("HTTP_TIMEOUT", &c.HTTPTimeout),
		integer("MAX_ATTEMPTS", &c.MaxAttempts),
		duration("RETRY_MIN_DELAY", &c.RetryMinDelay),
		duration("RETRY_MAX_DELAY", &c.RetryMaxDelay),
		integer("BATCH_WORKERS", &c.BatchWorkers),
		integer("BATCH_MAX_SIZE", &c.BatchMaxSize),
	)
}

// Bounds of the direct strategy's retry contract. Attempts may be lowered
// but never raised above the default.
const (
	maxAttemptsCap    = 3
	retryDelayFloor   = time.Second
	retryDelayCeiling = 5 * time.Second
)

// Validate reports every inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port must be set"))
	}
	if c.MaxAttempts < 1 || c.MaxAttempts > maxAttemptsCap {
		errs = append(errs, fmt.Errorf("max_attempts must be between 1 and %d, got %d", maxAttemptsCap, c.MaxAttempts))
	}
	if c.RetryMinDelay < retryDelayFloor {
		errs = append(errs, fmt.Errorf("retry_min_delay must be at least %s, got %s", retryDelayFloor, c.RetryMinDelay))
	}
	if c.RetryMaxDelay > retryDelayCeiling {
		errs = append(errs, fmt.Errorf("retry_max_delay must be at most %s, got %s", retryDelayCeiling, c.RetryMaxDelay))
	}
	if c.RetryMinDelay > c.RetryMaxDelay {
		errs = append(errs, fmt.Errorf("retry_min_delay %s exceeds retry_max_delay %s", c.RetryMinDelay, c.RetryMaxDelay))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("http_timeout must be positive"))
	}
	switch c.ScrapeMode {
	case ScrapeHTTP, ScrapeBrowser, ScrapeOff:
	default:
		errs = append(errs, fmt.Errorf("unknown scrape_mode %q", c.ScrapeMode))
	}
	if c.BatchWorkers < 1 {
		errs = append(errs, errors.New("batch_workers must be at least 1"))
	}
	if c.BatchMaxSize < 1 {
		errs = append(errs, errors.New("batch_max_size must be at least 1"))
	}
	return errors.Join(errs...)
}
