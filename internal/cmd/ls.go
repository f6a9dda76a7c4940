package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dandi/dandi-go/internal/archive"
	"github.com/dandi/dandi-go/internal/config"
	"github.com/dandi/dandi-go/internal/files"
	"github.com/dandi/dandi-go/internal/fscache"
	"github.com/dandi/dandi-go/internal/logger"
	"github.com/spf13/cobra"
)

// NewLsCommand creates the ls command
func NewLsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [path]...",
		Short: "List the DANDI-relevant files under the given paths",
		Long: `List the files that make up a dandiset, one line per file.

Paths default to the dandiset root (--dandiset, or the current
directory). Every listed file carries its classified kind: NWB files,
Zarr stores (listed as single assets, never descended into), video
files, and BIDS dataset descriptions together with the files they
govern. Hidden files and directories are always skipped.

By default only recognized asset types are listed. Use --all to include
unrecognized files and --metadata to include the dandiset.yaml itself.

Examples:
  # List the assets of the dandiset in the current directory
  dandi ls

  # List everything, including unrecognized files and dandiset.yaml
  dandi ls --all --metadata

  # Show asset size and content type, reusing the local metadata cache
  dandi ls --show-meta

  # Machine-readable output, one JSON object per line
  dandi ls --json --show-meta

  # List a single subject directory of another dandiset
  dandi ls -d ~/dandisets/000123 sub-01/`,
		Args:         cobra.ArbitraryArgs,
		RunE:         runLs,
		SilenceUsage: true,
	}

	// Add flags
	cmd.Flags().StringP("dandiset", "d", "", "Path to the dandiset root (default: current directory)")
	cmd.Flags().BoolP("all", "a", false, "Include files of unrecognized types")
	cmd.Flags().Bool("metadata", false, "Include the dandiset.yaml metadata file")
	cmd.Flags().Bool("json", false, "Emit one JSON object per line instead of columns")
	cmd.Flags().Bool("show-meta", false, "Extract and show asset size and content type")
	cmd.Flags().Bool("no-cache", false, "Bypass the local metadata cache")
	addConfigFlags(cmd)

	return cmd
}

// runLs implements the ls command logic
func runLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	allowAll, _ := cmd.Flags().GetBool("all")
	includeMetadata, _ := cmd.Flags().GetBool("metadata")
	asJSON, _ := cmd.Flags().GetBool("json")
	showMeta, _ := cmd.Flags().GetBool("show-meta")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	dandisetPath, err := resolveDandisetPath(cmd)
	if err != nil {
		return err
	}
	paths := resolveScanPaths(args, dandisetPath)

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	scanner, err := files.FindDandiFiles(paths, files.FindOptions{
		DandisetPath:    dandisetPath,
		AllowAll:        allowAll,
		IncludeMetadata: includeMetadata,
		Logger:          log,
	})
	if err != nil {
		return err
	}

	// Metadata extraction goes through the on-disk cache unless disabled.
	// A broken cache degrades to direct extraction instead of failing ls.
	var store *fscache.Store
	if showMeta && !noCache && !cfg.Cache.Disabled {
		dbPath := cfg.Cache.DBPath
		if dbPath == "" {
			dbPath, err = config.GetCacheDBPath()
			if err != nil {
				return fmt.Errorf("failed to locate metadata cache: %w", err)
			}
		}
		store, err = fscache.NewStore(dbPath)
		if err != nil {
			log.LogWarn(fmt.Sprintf("Metadata cache unavailable, extracting directly: %v", err))
		} else {
			defer store.Close()
		}
	}

	scanID := fscache.NewScanID()
	output := cmd.OutOrStdout()
	encoder := json.NewEncoder(output)

	log.LogScanStart(dandisetPath, len(paths))
	start := time.Now()

	found := 0
	for df, ok := scanner.Next(); ok; df, ok = scanner.Next() {
		found++

		var meta *archive.AssetMetadata
		if showMeta {
			if asset, isAsset := df.(files.LocalAsset); isAsset {
				m, metaErr := extractMeta(cmd.Context(), store, asset, scanID)
				if metaErr != nil {
					log.LogWarn(fmt.Sprintf("Failed to extract metadata for %s: %v", df.Path(), metaErr))
				} else {
					meta = &m
				}
			}
		}

		if asJSON {
			if err := encoder.Encode(newLsRow(df, meta)); err != nil {
				return fmt.Errorf("failed to encode %s: %w", df.Path(), err)
			}
			continue
		}
		printLsRow(output, df, meta, showMeta)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.LogScanComplete(found, time.Since(start))

	// Cache entries not touched by a full scan belong to files that no
	// longer exist. Partial scans must not prune what they did not visit.
	if store != nil && len(args) == 0 {
		if _, err := store.Prune(cmd.Context(), scanID); err != nil {
			log.LogWarn(fmt.Sprintf("Failed to prune metadata cache: %v", err))
		}
	}

	return nil
}

// extractMeta extracts asset metadata, consulting the cache when one is
// available.
func extractMeta(ctx context.Context, store *fscache.Store, asset files.LocalAsset, scanID string) (archive.AssetMetadata, error) {
	if store != nil {
		return store.Extract(ctx, archive.StatExtractor{}, asset, scanID)
	}
	return archive.StatExtractor{}.ExtractMetadata(ctx, asset)
}

// lsRow is the JSON encoding of one discovered file.
type lsRow struct {
	Path        string     `json:"path"`
	Kind        string     `json:"kind"`
	Size        *int64     `json:"size,omitempty"`
	Modified    *time.Time `json:"modified,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
	Digest      string     `json:"digest,omitempty"`
}

func newLsRow(df files.DandiFile, meta *archive.AssetMetadata) lsRow {
	row := lsRow{Path: df.Path(), Kind: kindLabel(df)}
	if meta != nil {
		row.Size = &meta.Size
		row.Modified = &meta.Modified
		row.ContentType = meta.ContentType
		row.Digest = meta.Digest
	}
	return row
}

// kindLabel names a discovered file's kind. The dandiset.yaml metadata
// file is the one DandiFile that is not an asset and has no Kind.
func kindLabel(df files.DandiFile) string {
	if asset, ok := df.(files.LocalAsset); ok {
		return asset.Kind().String()
	}
	return "dandiset-metadata"
}

// printLsRow writes one file as a column line. Metadata columns show "-"
// when extraction was skipped or failed.
func printLsRow(out io.Writer, df files.DandiFile, meta *archive.AssetMetadata, showMeta bool) {
	if !showMeta {
		fmt.Fprintf(out, "%-24s %s\n", kindLabel(df), df.Path())
		return
	}

	size, contentType := "-", "-"
	if meta != nil {
		size = strconv.FormatInt(meta.Size, 10)
		if meta.ContentType != "" {
			contentType = meta.ContentType
		}
	}
	fmt.Fprintf(out, "%-24s %12s %-28s %s\n", kindLabel(df), size, contentType, df.Path())
}
