package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.RetryMinDelay)
	assert.Equal(t, 3*time.Second, cfg.RetryMaxDelay)
	assert.Equal(t, ScrapeHTTP, cfg.ScrapeMode)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
max_attempts: 2
retry_min_delay: 1500ms
retry_max_delay: 4s
scrape_mode: "off"
batch_workers: 8
`), 0o600))

	t.Setenv("PORT", "9100")
	t.Setenv("PROXY_URL", "http://proxy:3128")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, 1500*time.Millisecond, cfg.RetryMinDelay)
	assert.Equal(t, 4*time.Second, cfg.RetryMaxDelay)
	assert.Equal(t, ScrapeOff, cfg.ScrapeMode)
	assert.Equal(t, 8, cfg.BatchWorkers)
	assert.Equal(t, 25, cfg.BatchMaxSize)
	assert.Equal(t, "http://proxy:3128", cfg.ProxyURL)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("port: [unterminated"), 0o600))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "parse config")

	t.Setenv("MAX_ATTEMPTS", "three")
	_, err = Load("")
	assert.ErrorContains(t, err, "MAX_ATTEMPTS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"min above max", func(c *Config) { c.RetryMinDelay = 5 * time.Second }, "exceeds retry_max_delay"},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }, "max_attempts"},
		{"too many attempts", func(c *Config) { c.MaxAttempts = 4 }, "max_attempts must be between 1 and 3"},
		{"min below one second", func(c *Config) { c.RetryMinDelay = 0 }, "retry_min_delay must be at least 1s"},
		{"max above five seconds", func(c *Config) { c.RetryMaxDelay = 6 * time.Second }, "retry_max_delay must be at most 5s"},
		{"unknown scrape mode", func(c *Config) { c.ScrapeMode = "selenium" }, "unknown scrape_mode"},
		{"no workers", func(c *Config) { c.BatchWorkers = 0 }, "batch_workers"},
		{"no timeout", func(c *Config) { c.HTTPTimeout = 0 }, "http_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoadRejectsRetryOverrides(t *testing.T) {
	t.Setenv("RETRY_MIN_DELAY", "0s")
	t.Setenv("RETRY_MAX_DELAY", "60s")
	t.Setenv("MAX_ATTEMPTS", "10")

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorContains(t, err, "retry_min_delay must be at least 1s")
	assert.ErrorContains(t, err, "retry_max_delay must be at most 5s")
	assert.ErrorContains(t, err, "max_attempts must be between 1 and 3")
}

func TestInitLogger(t *testing.T) {
	logger := InitLogger("debug", "text")
	assert.Same(t, logger, Log)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	logger = InitLogger("nonsense", "")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
