package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dandi/dandi-go/internal/config"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for dandi
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dandi",
		Short: "Command line client for DANDI archive dandisets",
		Long: `Dandi works with local dandisets: directories of neurophysiology
data laid out for upload to a DANDI archive instance.

It discovers and classifies the files that make up a dandiset (NWB files,
Zarr stores, videos, BIDS datasets), composes and checks dandiset.yaml
metadata, and keeps a local cache of extracted asset metadata.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewLsCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewRegisterCommand())
	cmd.AddCommand(NewInstancesCommand())

	return cmd
}

// addConfigFlags registers the flags shared by every command that loads
// the client configuration.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: $DANDI_HOME/config.yaml)")
	cmd.Flags().String("log-level", "", "Log verbosity: trace, debug, info, warn or error")
}

// loadConfig loads the client configuration, honoring the --config and
// --log-level flags. Flags override configuration file settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if logLevel, _ := cmd.Flags().GetString("log-level"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// resolveDandisetPath returns the absolute dandiset root selected by the
// --dandiset flag, defaulting to the current working directory.
func resolveDandisetPath(cmd *cobra.Command) (string, error) {
	dandisetPath, _ := cmd.Flags().GetString("dandiset")
	if dandisetPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		dandisetPath = wd
	}

	abs, err := filepath.Abs(dandisetPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve dandiset path %s: %w", dandisetPath, err)
	}
	return abs, nil
}

// resolveScanPaths converts positional arguments to absolute paths,
// defaulting to the dandiset root itself when none are given. Relative
// arguments are taken as dandiset-relative, so they mean the same thing
// no matter where the command runs from.
func resolveScanPaths(args []string, dandisetPath string) []string {
	if len(args) == 0 {
		return []string{dandisetPath}
	}

	paths := make([]string, len(args))
	for i, arg := range args {
		if filepath.IsAbs(arg) {
			paths[i] = filepath.Clean(arg)
			continue
		}
		paths[i] = filepath.Join(dandisetPath, arg)
	}
	return paths
}
