package files

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/dandi/dandi-go/internal/consts"
)

// FileKind is the classification outcome for a discovered path.
type FileKind int

const (
	// KindNWB is a single-file NWB asset.
	KindNWB FileKind = iota + 1
	// KindZarr is a directory-based Zarr store asset.
	KindZarr
	// KindVideo is a video file.
	KindVideo
	// KindGeneric is a file of no recognized type.
	KindGeneric
	// KindBIDSDatasetDescription is a BIDS dataset_description.json file.
	KindBIDSDatasetDescription
)

// String returns the kind's lowercase label.
func (k FileKind) String() string {
	switch k {
	case KindNWB:
		return "nwb"
	case KindZarr:
		return "zarr"
	case KindVideo:
		return "video"
	case KindGeneric:
		return "generic"
	case KindBIDSDatasetDescription:
		return "bids-dataset-description"
	default:
		return fmt.Sprintf("FileKind(%d)", int(k))
	}
}

// Classify determines the FileKind for the file or directory at path.
//
// A directory classifies only as a directory-based asset: it must be
// non-empty and carry a recognized suffix such as .zarr or .ngff, and
// anything else fails with *UnknownAssetError so the caller can fall back
// to walking it as a plain container. A file classifies by name alone, in
// priority order: the reserved dataset_description.json name, then the
// .nwb extension, then the video extensions, then generic. Extension
// matching is case-sensitive, so DATA.NWB is a generic file.
func Classify(path string) (FileKind, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return 0, fmt.Errorf("listing %s: %w", path, err)
		}
		if len(entries) == 0 {
			return 0, &UnknownAssetError{Path: path, Reason: "empty directories cannot be assets"}
		}
		if slices.Contains(consts.ZarrExtensions, filepath.Ext(path)) {
			return KindZarr, nil
		}
		return 0, &UnknownAssetError{
			Path:   path,
			Reason: fmt.Sprintf("directory suffix %q is not a recognized asset type", filepath.Ext(path)),
		}
	}
	name := filepath.Base(path)
	switch {
	case name == consts.BIDSDatasetDescription:
		return KindBIDSDatasetDescription, nil
	case filepath.Ext(name) == consts.NWBExtension:
		return KindNWB, nil
	case slices.Contains(consts.VideoFileExtensions, filepath.Ext(name)):
		return KindVideo, nil
	default:
		return KindGeneric, nil
	}
}
