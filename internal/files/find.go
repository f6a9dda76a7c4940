package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dandi/dandi-go/internal/consts"
)

// Logger is the logging surface the traversal reports through. It is
// satisfied by logger.ConsoleLogger; a nil FindOptions.Logger silences the
// traversal.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// FindOptions configures a discovery traversal.
type FindOptions struct {
	// DandisetPath is the root of the dandiset being scanned. Every
	// starting path must equal it or lie below it. When empty, each
	// file's dandiset-relative path degenerates to its base name.
	DandisetPath string

	// AllowAll yields everything: unrecognized files and the
	// dandiset.yaml metadata file included.
	AllowAll bool

	// IncludeMetadata additionally yields the dandiset.yaml metadata
	// file. Unrecognized files stay suppressed.
	IncludeMetadata bool

	// Logger receives the traversal's debug and warning messages.
	Logger Logger
}

// queueItem pairs a pending path with the BIDS dataset description context
// it inherited from the directory that enqueued it.
type queueItem struct {
	path   string
	bidsdd *BIDSDatasetDescriptionAsset
}

// Scanner is a lazy, single-pass iterator over the DandiFiles at or below
// a set of starting paths. Each Next call performs just enough filesystem
// work to produce one more file; once Next has returned false the scanner
// is exhausted, and a new scan needs a new Scanner.
//
// A Scanner must not be shared across goroutines without external
// synchronization.
type Scanner struct {
	opts  FindOptions
	queue []queueItem
	err   error
}

// FindDandiFiles validates the starting paths against opts.DandisetPath
// and returns a Scanner over every DANDI file at or below them.
//
// Files and directories whose names begin with a period are skipped.
// Directories appear in the output only when they classify as a
// directory-based asset such as a Zarr store, and those are not recursed
// into. Unrecognized files and the root dandiset.yaml are suppressed
// unless requested through FindOptions.
func FindDandiFiles(paths []string, opts FindOptions) (*Scanner, error) {
	queue := make([]queueItem, 0, len(paths))
	for _, p := range paths {
		if opts.DandisetPath != "" {
			if _, err := relativeTo(p, opts.DandisetPath); err != nil {
				return nil, err
			}
		}
		queue = append(queue, queueItem{path: filepath.Clean(p)})
	}
	return &Scanner{opts: opts, queue: queue}, nil
}

// Next advances the traversal to the next DandiFile. It returns false when
// the traversal is exhausted or has failed; Err tells the two apart.
func (s *Scanner) Next() (DandiFile, bool) {
	for s.err == nil && len(s.queue) > 0 {
		item := s.queue[0]
		s.queue = s.queue[1:]
		if df, ok := s.step(item); ok {
			return df, true
		}
	}
	return nil, false
}

// Err returns the error that stopped the traversal, or nil.
func (s *Scanner) Err() error { return s.err }

// step processes one queue entry, growing the queue with any children, and
// reports whether it produced a file to yield.
func (s *Scanner) step(item queueItem) (DandiFile, bool) {
	p, bidsdd := item.path, item.bidsdd
	if name := filepath.Base(p); name != "." && name != string(filepath.Separator) && strings.HasPrefix(name, ".") {
		return nil, false
	}

	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return s.stepDir(p, bidsdd)
	}
	// Everything that is not a directory, symlinks to files and broken
	// links included, is classified by name.
	df, err := New(p, s.opts.DandisetPath, bidsdd)
	if err != nil {
		s.err = err
		return nil, false
	}
	switch df.(type) {
	case *GenericAsset:
		if !s.opts.AllowAll {
			return nil, false
		}
	case *DandisetMetadataFile:
		if !s.opts.AllowAll && !s.opts.IncludeMetadata {
			return nil, false
		}
	}
	return df, true
}

func (s *Scanner) stepDir(p string, bidsdd *BIDSDatasetDescriptionAsset) (DandiFile, bool) {
	if li, err := os.Lstat(p); err == nil && li.Mode()&os.ModeSymlink != 0 {
		s.logWarn(fmt.Sprintf("%s: unsupported symbolic link to a directory, skipping", p))
		return nil, false
	}

	if s.opts.DandisetPath != "" && p == filepath.Clean(s.opts.DandisetPath) {
		// The dandiset root is never an asset. Bind any dataset
		// description sitting directly in it before the children are
		// classified, then walk them.
		entries, err := os.ReadDir(p)
		if err != nil {
			s.err = fmt.Errorf("listing dandiset root %s: %w", p, err)
			return nil, false
		}
		if dd, ok := s.datasetDescriptionIn(p); ok {
			bidsdd = dd
		}
		s.enqueue(p, entries, bidsdd)
		return nil, false
	}

	entries, err := os.ReadDir(p)
	if err != nil {
		s.logWarn(fmt.Sprintf("%s: cannot list directory, skipping: %v", p, err))
		return nil, false
	}
	if len(entries) == 0 {
		return nil, false
	}

	df, err := New(p, s.opts.DandisetPath, bidsdd)
	var unknown *UnknownAssetError
	if errors.As(err, &unknown) {
		// Not a directory-based asset: treat it as a plain container.
		if dd, ok := s.datasetDescriptionIn(p); ok {
			bidsdd = dd
		}
		s.enqueue(p, entries, bidsdd)
		return nil, false
	}
	if err != nil {
		s.err = err
		return nil, false
	}
	return df, true
}

// datasetDescriptionIn constructs the dataset_description.json asset lying
// directly inside dir, if there is one. The asset is built without an
// enclosing BIDS context: a newly met description starts its own.
func (s *Scanner) datasetDescriptionIn(dir string) (*BIDSDatasetDescriptionAsset, bool) {
	marker := filepath.Join(dir, consts.BIDSDatasetDescription)
	if _, err := os.Stat(marker); err != nil {
		return nil, false
	}
	df, err := New(marker, s.opts.DandisetPath, nil)
	if err != nil {
		var unknown *UnknownAssetError
		if errors.As(err, &unknown) {
			s.logWarn(fmt.Sprintf("%s: not a usable dataset description: %v", marker, err))
			return nil, false
		}
		s.err = err
		return nil, false
	}
	dd, ok := df.(*BIDSDatasetDescriptionAsset)
	if !ok {
		s.err = fmt.Errorf("%s: expected a dataset description, got %T", marker, df)
		return nil, false
	}
	s.logDebug(fmt.Sprintf("%s: entering BIDS dataset context", dd.FilePath()))
	return dd, true
}

// enqueue adds every direct child of dir to the work queue under the given
// context. ReadDir returns entries sorted by name, so siblings are visited
// in lexical order and, being appended, only after the rest of the current
// level.
func (s *Scanner) enqueue(dir string, entries []os.DirEntry, bidsdd *BIDSDatasetDescriptionAsset) {
	for _, e := range entries {
		s.queue = append(s.queue, queueItem{path: filepath.Join(dir, e.Name()), bidsdd: bidsdd})
	}
}

func (s *Scanner) logDebug(message string) {
	if s.opts.Logger != nil {
		s.opts.Logger.LogDebug(message)
	}
}

func (s *Scanner) logWarn(message string) {
	if s.opts.Logger != nil {
		s.opts.Logger.LogWarn(message)
	}
}

// CollectDandiFiles runs a full traversal eagerly and returns every file
// the scanner would yield.
func CollectDandiFiles(paths []string, opts FindOptions) ([]DandiFile, error) {
	scanner, err := FindDandiFiles(paths, opts)
	if err != nil {
		return nil, err
	}
	var found []DandiFile
	for {
		df, ok := scanner.Next()
		if !ok {
			break
		}
		found = append(found, df)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return found, nil
}
