package files

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkfile(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func mkdir(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
	return path
}

// TestClassifyFiles verifies the filename rules, including their priority
// order and case sensitivity.
func TestClassifyFiles(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		want     FileKind
	}{
		{"nwb file", "data.nwb", KindNWB},
		{"dataset description", "dataset_description.json", KindBIDSDatasetDescription},
		{"mp4 video", "movie.mp4", KindVideo},
		{"avi video", "movie.avi", KindVideo},
		{"mkv video", "movie.mkv", KindVideo},
		{"plain json", "sidecar.json", KindGeneric},
		{"no extension", "README", KindGeneric},
		{"uppercase nwb extension", "DATA.NWB", KindGeneric},
		{"uppercase video extension", "MOVIE.MP4", KindGeneric},
		{"nwb name without extension", "nwb", KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := mkfile(t, filepath.Join(dir, tt.filename))
			kind, err := Classify(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

// TestClassifyMissingFile verifies a path that does not exist still
// classifies by name.
func TestClassifyMissingFile(t *testing.T) {
	kind, err := Classify(filepath.Join(t.TempDir(), "ghost.nwb"))
	require.NoError(t, err)
	assert.Equal(t, KindNWB, kind)
}

// TestClassifyDirectories verifies the directory rules: only non-empty
// directories with a Zarr suffix are assets.
func TestClassifyDirectories(t *testing.T) {
	t.Run("zarr store", func(t *testing.T) {
		dir := mkdir(t, filepath.Join(t.TempDir(), "data.zarr"))
		mkfile(t, filepath.Join(dir, "0.0"))

		kind, err := Classify(dir)
		require.NoError(t, err)
		assert.Equal(t, KindZarr, kind)
	})

	t.Run("ngff store", func(t *testing.T) {
		dir := mkdir(t, filepath.Join(t.TempDir(), "image.ngff"))
		mkfile(t, filepath.Join(dir, ".zattrs"))

		kind, err := Classify(dir)
		require.NoError(t, err)
		assert.Equal(t, KindZarr, kind)
	})

	t.Run("empty zarr directory", func(t *testing.T) {
		dir := mkdir(t, filepath.Join(t.TempDir(), "data.zarr"))

		_, err := Classify(dir)
		var unknown *UnknownAssetError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, dir, unknown.Path)
	})

	t.Run("plain directory", func(t *testing.T) {
		dir := mkdir(t, filepath.Join(t.TempDir(), "sub-01"))
		mkfile(t, filepath.Join(dir, "scan.nwb"))

		_, err := Classify(dir)
		var unknown *UnknownAssetError
		assert.ErrorAs(t, err, &unknown)
	})

	t.Run("directory named like an nwb file", func(t *testing.T) {
		dir := mkdir(t, filepath.Join(t.TempDir(), "data.nwb"))
		mkfile(t, filepath.Join(dir, "payload"))

		_, err := Classify(dir)
		var unknown *UnknownAssetError
		assert.ErrorAs(t, err, &unknown,
			"directory rules must run before filename rules")
	})
}

// TestClassifyDeterministic verifies repeated classification of an
// unchanged path gives the same answer.
func TestClassifyDeterministic(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		mkfile(t, filepath.Join(dir, "a.nwb")),
		mkfile(t, filepath.Join(dir, "b.mp4")),
		mkfile(t, filepath.Join(dir, "c.txt")),
	}
	zarr := mkdir(t, filepath.Join(dir, "d.zarr"))
	mkfile(t, filepath.Join(zarr, "chunk"))
	paths = append(paths, zarr)

	for _, p := range paths {
		first, err1 := Classify(p)
		second, err2 := Classify(p)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, first, second, "classification of %s changed between calls", p)
	}
}

// TestFileKindString covers the display labels.
func TestFileKindString(t *testing.T) {
	assert.Equal(t, "nwb", KindNWB.String())
	assert.Equal(t, "zarr", KindZarr.String())
	assert.Equal(t, "video", KindVideo.String())
	assert.Equal(t, "generic", KindGeneric.String())
	assert.Equal(t, "bids-dataset-description", KindBIDSDatasetDescription.String())
	assert.Equal(t, "FileKind(0)", FileKind(0).String())
}

// TestUnknownAssetErrorUnwrap verifies the error survives wrapping.
func TestUnknownAssetErrorUnwrap(t *testing.T) {
	dir := mkdir(t, filepath.Join(t.TempDir(), "plain"))
	mkfile(t, filepath.Join(dir, "child"))

	_, err := Classify(dir)
	require.Error(t, err)
	wrapped := fmt.Errorf("classifying: %w", err)

	var unknown *UnknownAssetError
	assert.ErrorAs(t, wrapped, &unknown)
}
