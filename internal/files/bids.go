package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dandi/dandi-go/internal/consts"
)

// FindBIDSDatasetDescription searches dirpath and its ancestors for the
// nearest dataset_description.json and returns its asset, or nil when
// dirpath lies in no BIDS dataset. The search gives up at the first
// directory holding a dandiset.yaml, at dandisetPath when given, and at
// the filesystem root; each of those bounds is still searched itself.
//
// This answers the context question for a path handed to the traversal
// mid-tree, where the directories that would have established the BIDS
// context were never visited.
func FindBIDSDatasetDescription(dirpath, dandisetPath string) (*BIDSDatasetDescriptionAsset, error) {
	d := filepath.Clean(dirpath)
	for {
		marker := filepath.Join(d, consts.BIDSDatasetDescription)
		if fileOrSymlinkExists(marker) {
			df, err := New(marker, dandisetPath, nil)
			if err != nil {
				return nil, err
			}
			dd, ok := df.(*BIDSDatasetDescriptionAsset)
			if !ok {
				return nil, fmt.Errorf("%s: expected a dataset description, got %T", marker, df)
			}
			return dd, nil
		}
		if fileOrSymlinkExists(filepath.Join(d, consts.DandisetMetadataFile)) {
			return nil, nil
		}
		if dandisetPath != "" && d == filepath.Clean(dandisetPath) {
			return nil, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return nil, nil
		}
		d = parent
	}
}

// fileOrSymlinkExists reports whether path names a regular file or a
// symbolic link, broken links included.
func fileOrSymlinkExists(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() || info.Mode()&os.ModeSymlink != 0
}
