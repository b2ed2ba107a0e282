package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.ManifestURL != DefaultManifestURL {
		t.Errorf("expected default ManifestURL=%q, got %q", DefaultManifestURL, cfg.ManifestURL)
	}

	if cfg.DownloadDir != "." {
		t.Errorf("expected default DownloadDir='.', got %q", cfg.DownloadDir)
	}

	if cfg.VerifyChecksum {
		t.Error("expected checksum verification to be off by default")
	}

	if !cfg.ShowProgress {
		t.Error("expected ShowProgress=true by default")
	}

	if cfg.ManifestTimeout() != 30*time.Second {
		t.Errorf("expected 30s manifest timeout, got %v", cfg.ManifestTimeout())
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	// Loading a non-existent file should return default config
	cfg, err := Load("/nonexistent/path/config.yaml")

	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.ManifestURL != DefaultManifestURL {
		t.Errorf("expected default ManifestURL, got %q", cfg.ManifestURL)
	}
}

func TestSave_And_Load(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "config.yaml")

	cfg := &Config{
		ManifestURL:            "http://mirror.example.org/info.json",
		DownloadDir:            "/srv/rootfs",
		ManifestTimeoutSeconds: 5,
		VerifyChecksum:         true,
		ShowProgress:           false,
		ColorTheme:             "dark",
		LogLevel:               "debug",
	}

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", *loaded, *cfg)
	}
}

func TestEnsureFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "fetch_tool", "config.yaml")

	created, err := EnsureFile(configPath)
	if err != nil {
		t.Fatalf("EnsureFile failed: %v", err)
	}
	if !created {
		t.Fatal("expected a default config to be written")
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults on disk, got %+v", *cfg)
	}
}

func TestEnsureFile_KeepsExisting(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := "manifest_url: http://mirror.example.org/info.json\n"
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	created, err := EnsureFile(configPath)
	if err != nil {
		t.Fatalf("EnsureFile failed: %v", err)
	}
	if created {
		t.Error("existing config must not be replaced")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if string(data) != yamlContent {
		t.Errorf("config was modified: %q", data)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	// Partial config: only the download dir is set
	yamlContent := `download_dir: /tmp/images
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.ManifestURL != DefaultManifestURL {
		t.Errorf("expected default ManifestURL, got %q", cfg.ManifestURL)
	}
	if !cfg.ShowProgress {
		t.Error("expected ShowProgress default to survive a partial file")
	}
	if cfg.DownloadDir != "/tmp/images" {
		t.Errorf("expected DownloadDir='/tmp/images', got %q", cfg.DownloadDir)
	}
}

func TestLoad_EmptyAndInvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	yamlContent := `manifest_url: ""
download_dir: ""
manifest_timeout_seconds: -3
color_theme: neon
log_level: chatty
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.ManifestURL != DefaultManifestURL {
		t.Errorf("expected default ManifestURL for empty value, got %q", cfg.ManifestURL)
	}
	if cfg.DownloadDir != "." {
		t.Errorf("expected default DownloadDir for empty value, got %q", cfg.DownloadDir)
	}
	if cfg.ManifestTimeoutSeconds != DefaultManifestTimeout {
		t.Errorf("expected default timeout for negative value, got %d", cfg.ManifestTimeoutSeconds)
	}
	if cfg.ColorTheme != "auto" {
		t.Errorf("expected ColorTheme='auto' for invalid value, got %q", cfg.ColorTheme)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected LogLevel='warn' for invalid value, got %q", cfg.LogLevel)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	yamlContent := `manifest_url: http://x/info.json
download_dir: [invalid yaml structure
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("expected error loading invalid YAML, got nil")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvManifestURL, "http://env.example.org/info.json")
	t.Setenv(EnvDownloadDir, "/env/dir")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.ManifestURL != "http://env.example.org/info.json" {
		t.Errorf("expected env ManifestURL, got %q", cfg.ManifestURL)
	}
	if cfg.DownloadDir != "/env/dir" {
		t.Errorf("expected env DownloadDir, got %q", cfg.DownloadDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected env LogLevel='debug', got %q", cfg.LogLevel)
	}
}

func TestApplyEnv_IgnoresBlankAndInvalid(t *testing.T) {
	t.Setenv(EnvManifestURL, "   ")
	t.Setenv(EnvDownloadDir, "")
	t.Setenv(EnvLogLevel, "loud")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.ManifestURL != DefaultManifestURL {
		t.Errorf("blank env must not override ManifestURL, got %q", cfg.ManifestURL)
	}
	if cfg.DownloadDir != "." {
		t.Errorf("empty env must not override DownloadDir, got %q", cfg.DownloadDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("invalid env must not override LogLevel, got %q", cfg.LogLevel)
	}
}
