package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Name is the directory name used under the user's config root
const Name = "fetch_tool"

// ConfigPath returns the config file location.
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func ConfigPath() (string, error) {
	// Check XDG_CONFIG_HOME first (Unix-like systems)
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, Name, "config.yaml"), nil
	}

	// Check if we're on Windows by looking for APPDATA
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, Name, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Fall back to ~/.config/fetch_tool/config.yaml (Unix-like systems)
	return filepath.Join(homeDir, ".config", Name, "config.yaml"), nil
}
