package archive

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/dandi/dandi-go/internal/files"
)

// StatExtractor derives asset metadata from filesystem attributes alone;
// it never opens asset payloads.
type StatExtractor struct{}

var _ MetadataExtractor = StatExtractor{}

// ExtractMetadata returns size, modification time, and a content type for
// the asset. Directory assets are sized as the sum of the regular files
// inside them.
func (StatExtractor) ExtractMetadata(ctx context.Context, asset files.LocalAsset) (AssetMetadata, error) {
	info, err := os.Stat(asset.FilePath())
	if err != nil {
		return AssetMetadata{}, fmt.Errorf("stat %s: %w", asset.FilePath(), err)
	}

	meta := AssetMetadata{
		Path:        asset.Path(),
		Modified:    info.ModTime().UTC(),
		ContentType: contentType(asset),
	}

	if info.IsDir() {
		size, err := dirSize(ctx, asset.FilePath())
		if err != nil {
			return AssetMetadata{}, err
		}
		meta.Size = size
	} else {
		meta.Size = info.Size()
	}

	return meta, nil
}

// contentType maps the scientific asset kinds to their conventional MIME
// types and falls back to extension lookup for everything else.
func contentType(asset files.LocalAsset) string {
	switch asset.Kind() {
	case files.KindNWB:
		return "application/x-nwb"
	case files.KindZarr:
		return "application/x-zarr"
	case files.KindBIDSDatasetDescription:
		return "application/json"
	default:
		return mime.TypeByExtension(filepath.Ext(asset.FilePath()))
	}
}

// dirSize sums the sizes of the regular files below dir.
func dirSize(ctx context.Context, dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("sizing %s: %w", dir, err)
	}
	return total, nil
}
