// ABOUTME: Configuration loader for the proptrack CLI
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultAPIURL = "http://localhost:8000"

type Config struct {
	APIURL    string // backend base URL
	ConfigDir string // where the session file and debug log live
	DebugLog  string // debug log path, empty disables file logging
}

// Load builds the configuration from environment variables.
// PROPTRACK_API_URL overrides the default backend URL;
// PROPTRACK_DEBUG_LOG enables debug logging to the given file.
func Load() (*Config, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:    ensureScheme(getEnv("PROPTRACK_API_URL", defaultAPIURL)),
		ConfigDir: getEnv("PROPTRACK_CONFIG_DIR", dir),
		DebugLog:  os.Getenv("PROPTRACK_DEBUG_LOG"),
	}
	return cfg, nil
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "proptrack"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "proptrack"), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ensureScheme adds http:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
