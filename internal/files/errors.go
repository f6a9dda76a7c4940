package files

import "fmt"

// UnknownAssetError reports a directory that cannot be an asset: one that
// is empty, or whose name lacks a recognized directory-asset suffix. The
// discovery traversal recovers from it by descending into the directory as
// a plain container, so consumers of the traversal never see it.
type UnknownAssetError struct {
	Path   string
	Reason string
}

func (e *UnknownAssetError) Error() string {
	return fmt.Sprintf("%s: not a known asset type: %s", e.Path, e.Reason)
}

// PathOutsideRootError reports a path that is neither the dandiset root
// nor a descendant of it.
type PathOutsideRootError struct {
	Path         string
	DandisetPath string
}

func (e *PathOutsideRootError) Error() string {
	return fmt.Sprintf("path %q is not inside dandiset %q", e.Path, e.DandisetPath)
}

// InvalidPathError reports a file path that resolves to the dandiset root
// itself. The root directory cannot be an asset.
type InvalidPathError struct {
	FilePath     string
	DandisetPath string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("file path %q is the dandiset root %q itself", e.FilePath, e.DandisetPath)
}
