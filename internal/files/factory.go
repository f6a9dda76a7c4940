package files

import (
	"os"
	"path/filepath"
	"strings"
	"weak"

	"github.com/dandi/dandi-go/internal/consts"
)

// New returns the DandiFile of the appropriate type for the file or
// directory at fpath within the dandiset rooted at dandisetPath. When
// dandisetPath is empty the file's dandiset-relative path is just its
// base name.
//
// A regular file whose dandiset-relative path is exactly dandiset.yaml
// becomes a DandisetMetadataFile regardless of any BIDS context. With a
// nil bidsdd every other path maps to a plain asset type; with a non-nil
// bidsdd, fpath is taken to lie inside the BIDS dataset anchored at that
// description and file assets come out BIDS-linked.
//
// Directories must classify as a directory-based asset kind such as Zarr;
// for any other directory New returns the classifier's *UnknownAssetError.
func New(fpath, dandisetPath string, bidsdd *BIDSDatasetDescriptionAsset) (DandiFile, error) {
	var path string
	if dandisetPath != "" {
		rel, err := relativeTo(fpath, dandisetPath)
		if err != nil {
			return nil, err
		}
		if rel == "." {
			return nil, &InvalidPathError{FilePath: fpath, DandisetPath: dandisetPath}
		}
		path = rel
	} else {
		path = filepath.Base(fpath)
	}
	if path == consts.DandisetMetadataFile && isRegularFile(fpath) {
		return &DandisetMetadataFile{dandiFile{fpath, path}}, nil
	}
	if bidsdd != nil {
		return bidsFileFactory{bidsdd}.construct(fpath, path)
	}
	return dandiFileFactory{}.construct(fpath, path)
}

// relativeTo resolves fpath against root into a forward-slashed relative
// path, failing with *PathOutsideRootError when fpath does not lie at or
// below root.
func relativeTo(fpath, root string) (string, error) {
	rel, err := filepath.Rel(root, fpath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &PathOutsideRootError{Path: fpath, DandisetPath: root}
	}
	return filepath.ToSlash(rel), nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// dandiFileFactory builds the plain entity for each asset kind. Both
// factories are tag-to-constructor tables so that adding a kind means
// adding a row, not a branch.
type dandiFileFactory struct{}

var dandiFileClasses = map[FileKind]func(fpath, path string) DandiFile{
	KindNWB:     func(fpath, path string) DandiFile { return &NWBAsset{dandiFile{fpath, path}} },
	KindZarr:    func(fpath, path string) DandiFile { return &ZarrAsset{dandiFile{fpath, path}} },
	KindVideo:   func(fpath, path string) DandiFile { return &VideoAsset{dandiFile{fpath, path}} },
	KindGeneric: func(fpath, path string) DandiFile { return &GenericAsset{dandiFile{fpath, path}} },
	KindBIDSDatasetDescription: func(fpath, path string) DandiFile {
		return &BIDSDatasetDescriptionAsset{dandiFile: dandiFile{fpath, path}}
	},
}

func (dandiFileFactory) construct(fpath, path string) (DandiFile, error) {
	kind, err := Classify(fpath)
	if err != nil {
		return nil, err
	}
	return dandiFileClasses[kind](fpath, path), nil
}

// bidsFileFactory builds entities governed by one dataset description.
// Constructing an asset registers it in the description's dataset file
// collection, so the factory must see each discovered path at most once.
type bidsFileFactory struct {
	bidsdd *BIDSDatasetDescriptionAsset
}

var bidsFileClasses = map[FileKind]func(fpath, path string, ref weak.Pointer[BIDSDatasetDescriptionAsset]) BIDSAsset{
	KindNWB: func(fpath, path string, ref weak.Pointer[BIDSDatasetDescriptionAsset]) BIDSAsset {
		return &NWBBIDSAsset{dandiFile{fpath, path}, bidsLink{ref}}
	},
	KindZarr: func(fpath, path string, ref weak.Pointer[BIDSDatasetDescriptionAsset]) BIDSAsset {
		return &ZarrBIDSAsset{dandiFile{fpath, path}, bidsLink{ref}}
	},
	KindVideo: func(fpath, path string, ref weak.Pointer[BIDSDatasetDescriptionAsset]) BIDSAsset {
		return &GenericBIDSAsset{dandiFile{fpath, path}, bidsLink{ref}}
	},
	KindGeneric: func(fpath, path string, ref weak.Pointer[BIDSDatasetDescriptionAsset]) BIDSAsset {
		return &GenericBIDSAsset{dandiFile{fpath, path}, bidsLink{ref}}
	},
}

func (f bidsFileFactory) construct(fpath, path string) (DandiFile, error) {
	kind, err := Classify(fpath)
	if err != nil {
		return nil, err
	}
	if kind == KindBIDSDatasetDescription {
		if fpath == f.bidsdd.FilePath() {
			// The governing description itself: return the one existing
			// entity so its identity is preserved.
			return f.bidsdd, nil
		}
		// A description nested below another starts a context of its
		// own and is not linked to the enclosing one.
		return &BIDSDatasetDescriptionAsset{dandiFile: dandiFile{fpath, path}}, nil
	}
	df := bidsFileClasses[kind](fpath, path, weak.Make(f.bidsdd))
	f.bidsdd.datasetFiles = append(f.bidsdd.datasetFiles, df)
	return df, nil
}
