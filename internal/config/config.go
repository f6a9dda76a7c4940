package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dandi/dandi-go/internal/consts"
)

// CacheConfig configures the local asset metadata cache.
type CacheConfig struct {
	// Disabled turns the cache off entirely; every scan re-extracts
	// metadata from scratch.
	Disabled bool `yaml:"disabled"`

	// DBPath overrides the cache database location
	// (default: $DANDI_HOME/cache/assets.db)
	DBPath string `yaml:"db_path"`
}

// Config represents dandi configuration options
type Config struct {
	// Instance is the name of the DANDI instance commands talk to
	Instance string `yaml:"instance"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Cache contains asset metadata cache configuration
	Cache CacheConfig `yaml:"cache"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Instance: consts.DefaultInstance,
		LogLevel: "info",
		Cache: CacheConfig{
			Disabled: false,
			DBPath:   "",
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file is not an error and yields the defaults; a malformed
// file is an error. Values present in the file override the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.Instance != "" {
		cfg.Instance = fileCfg.Instance
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}

	// The cache section needs presence detection: `disabled: false` and
	// an absent section both unmarshal to the zero value.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if section, exists := rawMap["cache"]; exists && section != nil {
			cacheMap, _ := section.(map[string]interface{})
			if _, exists := cacheMap["disabled"]; exists {
				cfg.Cache.Disabled = fileCfg.Cache.Disabled
			}
			if _, exists := cacheMap["db_path"]; exists {
				cfg.Cache.DBPath = fileCfg.Cache.DBPath
			}
		}
	}

	return cfg, nil
}

// LoadDefault loads the configuration from $DANDI_HOME/config.yaml.
func LoadDefault() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfig(path)
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if _, err := consts.GetInstance(c.Instance); err != nil {
		return fmt.Errorf("invalid instance: %w", err)
	}

	return nil
}
