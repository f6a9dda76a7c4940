package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDandiHome returns the directory holding dandi's per-user state
// (configuration and caches).
// Priority order:
//  1. DANDI_HOME environment variable (if set)
//  2. .dandi under the user's home directory
//
// The directory is created if it doesn't exist.
func GetDandiHome() (string, error) {
	if home := os.Getenv("DANDI_HOME"); home != "" {
		if err := os.MkdirAll(home, 0o755); err != nil {
			return "", fmt.Errorf("create dandi home directory: %w", err)
		}
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home directory: %w", err)
	}

	dandiHome := filepath.Join(userHome, ".dandi")
	if err := os.MkdirAll(dandiHome, 0o755); err != nil {
		return "", fmt.Errorf("create dandi home directory: %w", err)
	}

	return dandiHome, nil
}

// GetConfigPath returns the path of the user configuration file:
// $DANDI_HOME/config.yaml.
func GetConfigPath() (string, error) {
	home, err := GetDandiHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// GetCacheDir returns the cache directory, creating it if needed.
func GetCacheDir() (string, error) {
	home, err := GetDandiHome()
	if err != nil {
		return "", err
	}

	cacheDir := filepath.Join(home, "cache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}

	return cacheDir, nil
}

// GetCacheDBPath returns the absolute path of the asset metadata cache
// database. Always returns: $DANDI_HOME/cache/assets.db
func GetCacheDBPath() (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "assets.db"), nil
}
