package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultManifestURL is the published FEX rootfs manifest
	DefaultManifestURL     = "http://dist.fex-emu.org/info.json"
	DefaultManifestTimeout = 30

	EnvManifestURL = "FETCH_TOOL_MANIFEST_URL"
	EnvDownloadDir = "FETCH_TOOL_DOWNLOAD_DIR"
	EnvLogLevel    = "FETCH_TOOL_LOG_LEVEL"
)

type Config struct {
	ManifestURL string `yaml:"manifest_url"`
	DownloadDir string `yaml:"download_dir"`

	// Bounds the manifest request only; downloads are not time-limited
	ManifestTimeoutSeconds int `yaml:"manifest_timeout_seconds"`

	VerifyChecksum bool `yaml:"verify_checksum"`

	// UI Settings
	ShowProgress bool   `yaml:"show_progress"`
	ColorTheme   string `yaml:"color_theme"`
	LogLevel     string `yaml:"log_level"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		ManifestURL:            DefaultManifestURL,
		DownloadDir:            ".",
		ManifestTimeoutSeconds: DefaultManifestTimeout,
		VerifyChecksum:         false,
		ShowProgress:           true,
		ColorTheme:             "auto",
		LogLevel:               "warn",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.ManifestURL == "" {
		cfg.ManifestURL = DefaultManifestURL
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = "."
	}
	if cfg.ManifestTimeoutSeconds <= 0 {
		cfg.ManifestTimeoutSeconds = DefaultManifestTimeout
	}
	if !isValidTheme(cfg.ColorTheme) {
		cfg.ColorTheme = "auto"
	}
	if !isValidLogLevel(cfg.LogLevel) {
		cfg.LogLevel = "warn"
	}

	return cfg, nil
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overrides values with FETCH_TOOL_* environment variables
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvManifestURL)); v != "" {
		c.ManifestURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDownloadDir)); v != "" {
		c.DownloadDir = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))); isValidLogLevel(v) {
		c.LogLevel = v
	}
}

// ManifestTimeout returns the manifest request timeout as a duration
func (c *Config) ManifestTimeout() time.Duration {
	if c.ManifestTimeoutSeconds <= 0 {
		return DefaultManifestTimeout * time.Second
	}
	return time.Duration(c.ManifestTimeoutSeconds) * time.Second
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// EnsureFile writes the default configuration to path when no file exists
// there yet. It reports whether a file was created.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	if err := DefaultConfig().Save(path); err != nil {
		return false, err
	}
	return true, nil
}

func isValidTheme(theme string) bool {
	switch theme {
	case "auto", "dark", "light":
		return true
	}
	return false
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
