package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dandi/dandi-go/internal/archive"
	"github.com/dandi/dandi-go/internal/dandiset"
	"github.com/dandi/dandi-go/internal/display"
	"github.com/dandi/dandi-go/internal/files"
	"github.com/dandi/dandi-go/internal/logger"
	"github.com/spf13/cobra"
)

// assetValidator, when set, contributes per-asset diagnostics to validate
// runs. No validator ships with the tool itself; integrations and tests
// inject one.
var assetValidator archive.Validator

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [path]...",
		Short: "Check a dandiset for problems before upload",
		Long: `Check the dandiset layout and metadata, reporting:
  - Missing or unparseable dandiset.yaml at the dandiset root
  - Metadata field violations (name and description limits, license, email)
  - Paths that do not belong to the dandiset
  - Dandisets with no uploadable assets
  - Per-asset findings from a configured asset validator

Paths default to the dandiset root (--dandiset, or the current
directory); pass subpaths to restrict the asset checks to them.

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateDandiset(cmd, args, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("dandiset", "d", "", "Path to the dandiset root (default: current directory)")
	addConfigFlags(cmd)

	return cmd
}

// validateDandiset performs the full validation of one dandiset. The
// output parameter allows redirecting output for testing.
func validateDandiset(cmd *cobra.Command, args []string, output io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dandisetPath, err := resolveDandisetPath(cmd)
	if err != nil {
		return err
	}

	var errors []string

	// 1. Check the dandiset.yaml metadata file
	errors = append(errors, validateMetadata(dandisetPath, output)...)

	// 2. Discover the assets under the requested paths
	paths := resolveScanPaths(args, dandisetPath)

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	found, err := files.CollectDandiFiles(paths, files.FindOptions{
		DandisetPath: dandisetPath,
		Logger:       log,
	})
	if err != nil {
		errors = append(errors, err.Error())
		fmt.Fprintf(output, "✗ Asset discovery failed: %v\n", err)
	} else {
		var assets []files.LocalAsset
		for _, df := range found {
			if asset, ok := df.(files.LocalAsset); ok {
				assets = append(assets, asset)
			}
		}

		if len(assets) == 0 {
			errors = append(errors, "no uploadable assets found")
			fmt.Fprintf(output, "✗ No uploadable assets found\n")
		} else {
			fmt.Fprintf(output, "✓ Found %d asset(s)\n", len(assets))

			// 3. Run the configured asset validator, if any
			if assetValidator != nil {
				errors = append(errors, validateAssets(cmd.Context(), assets, output)...)
			}
		}
	}

	// Final validation check
	if len(errors) == 0 {
		fmt.Fprintf(output, "\n✓ Dandiset is valid!\n")
		return nil
	}

	// Report all validation errors
	fmt.Fprintf(output, "\n✗ Validation failed for dandiset at %s\n", dandisetPath)
	for _, errMsg := range errors {
		fmt.Fprintf(output, "  ✗ %s\n", errMsg)
	}
	fmt.Fprintf(output, "\nFound %d validation error(s)!\n", len(errors))

	return fmt.Errorf("validation failed with %d error(s)", len(errors))
}

// validateMetadata checks the dandiset.yaml at the dandiset root and
// returns the error messages to report.
func validateMetadata(dandisetPath string, output io.Writer) []string {
	var errors []string

	if _, err := os.Stat(dandiset.MetadataPath(dandisetPath)); err != nil {
		errors = append(errors, fmt.Sprintf("%s: no dandiset.yaml", dandisetPath))
		fmt.Fprintf(output, "✗ No dandiset.yaml at the dandiset root\n")
		display.WarnMissingMetadata(dandisetPath).Display(output)
		return errors
	}

	meta, err := dandiset.Load(dandisetPath)
	if err != nil {
		errors = append(errors, fmt.Sprintf("dandiset.yaml: %v", err))
		fmt.Fprintf(output, "✗ Failed to read dandiset.yaml\n")
		return errors
	}

	if err := meta.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("dandiset.yaml: %v", err))
		fmt.Fprintf(output, "✗ dandiset.yaml metadata is invalid\n")
		return errors
	}

	fmt.Fprintf(output, "✓ dandiset.yaml is valid\n")
	return nil
}

// validateAssets runs the injected asset validator over every asset that
// belongs to a BIDS dataset and returns the error messages to report.
// Warning-level findings are displayed but do not fail the run.
func validateAssets(ctx context.Context, assets []files.LocalAsset, output io.Writer) []string {
	var errors []string
	var warned []string

	progress := display.NewProgressIndicator(output, "Checking assets", len(assets))
	progress.Start()

	checked := 0
	for _, asset := range assets {
		progress.Step(asset.Path())

		bidsAsset, ok := asset.(files.BIDSAsset)
		if !ok {
			continue
		}
		checked++

		results, err := assetValidator.ValidateAsset(ctx, bidsAsset)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", asset.Path(), err))
			continue
		}
		for _, result := range results {
			switch result.Severity {
			case archive.SeverityError:
				errors = append(errors, fmt.Sprintf("%s: %s", result.Path, result.Message))
			case archive.SeverityWarning:
				warned = append(warned, result.Path)
			}
		}
	}

	progress.Complete(fmt.Sprintf("Checked %d of %d assets", checked, len(assets)))

	if len(warned) > 0 {
		display.WarnAffectedAssets("Assets reported validation warnings", warned).Display(output)
	}

	return errors
}
