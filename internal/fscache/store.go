// Package fscache caches extracted asset metadata in a local SQLite
// database so repeated scans of a dandiset only re-read files that
// changed on disk. Entries are fingerprinted by size and modification
// time and tagged with the scan that last touched them, which lets a
// finished scan prune entries for files that no longer exist.
package fscache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dandi/dandi-go/internal/archive"
	"github.com/dandi/dandi-go/internal/files"
)

// Store manages the SQLite database holding cached asset metadata.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a Store and initializes the database schema,
// creating the parent directory of dbPath if needed.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == ":memory:" {
		return openAndInitStore(dbPath)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	return openAndInitStore(dbPath)
}

func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure SQLite for concurrent access. busy_timeout must come
	// first so the remaining pragmas wait on locks instead of failing,
	// and lock errors during concurrent initialization of the same
	// database file are retried with backoff.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-64000", // 64MB cache
	}

	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return store, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry
// on "database is locked" errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}

		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		delay := baseDelay * time.Duration(1<<attempt)
		time.Sleep(delay)
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DBPath returns the path of the backing database file.
func (s *Store) DBPath() string {
	return s.dbPath
}

// NewScanID returns a unique identifier for one scan pass. Entries
// touched during the pass carry the ID so Prune can drop the rest.
func NewScanID() string {
	return uuid.NewString()
}

// Lookup returns the cached metadata for filePath when the stored entry
// matches the given size and modification time. A hit refreshes the
// entry's scan tag when scanID is non-empty. The boolean reports
// whether the cache was usable; a stale or absent entry is not an
// error.
func (s *Store) Lookup(ctx context.Context, filePath string, size int64, mtime time.Time, scanID string) (*archive.AssetMetadata, bool, error) {
	query := `SELECT asset_path, size, mtime_ns, content_type, digest
		FROM asset_metadata WHERE file_path = ?`

	var assetPath string
	var cachedSize, mtimeNS int64
	var contentType, digest sql.NullString

	err := s.db.QueryRowContext(ctx, query, filePath).Scan(&assetPath, &cachedSize, &mtimeNS, &contentType, &digest)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query cached metadata: %w", err)
	}

	if cachedSize != size || mtimeNS != mtime.UnixNano() {
		return nil, false, nil
	}

	if scanID != "" {
		touch := `UPDATE asset_metadata SET last_scan_id = ? WHERE file_path = ?`
		if _, err := s.db.ExecContext(ctx, touch, scanID, filePath); err != nil {
			return nil, false, fmt.Errorf("tag cached metadata: %w", err)
		}
	}

	meta := &archive.AssetMetadata{
		Path:     assetPath,
		Size:     cachedSize,
		Modified: time.Unix(0, mtimeNS).UTC(),
	}
	if contentType.Valid {
		meta.ContentType = contentType.String
	}
	if digest.Valid {
		meta.Digest = digest.String
	}
	return meta, true, nil
}

// Record stores extracted metadata for filePath, replacing any previous
// entry. The entry is fingerprinted by meta.Size and meta.Modified and
// tagged with scanID.
func (s *Store) Record(ctx context.Context, filePath string, meta archive.AssetMetadata, scanID string) error {
	query := `INSERT OR REPLACE INTO asset_metadata
		(file_path, asset_path, size, mtime_ns, content_type, digest, last_scan_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		filePath,
		meta.Path,
		meta.Size,
		meta.Modified.UnixNano(),
		meta.ContentType,
		meta.Digest,
		scanID,
	)
	if err != nil {
		return fmt.Errorf("record asset metadata: %w", err)
	}
	return nil
}

// Prune deletes entries that were not touched by the given scan and
// returns the number of rows removed. Files deleted or renamed on disk
// stop being tagged, so pruning after a full scan clears them out.
func (s *Store) Prune(ctx context.Context, scanID string) (int64, error) {
	query := `DELETE FROM asset_metadata WHERE last_scan_id IS NULL OR last_scan_id != ?`

	result, err := s.db.ExecContext(ctx, query, scanID)
	if err != nil {
		return 0, fmt.Errorf("prune stale metadata: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return deleted, nil
}

// Extract returns metadata for the asset, reusing the cached entry when
// the file's size and modification time are unchanged. Directory assets
// are always re-extracted: a directory's mtime does not reflect changes
// below its first level.
func (s *Store) Extract(ctx context.Context, extractor archive.MetadataExtractor, asset files.LocalAsset, scanID string) (archive.AssetMetadata, error) {
	info, err := os.Stat(asset.FilePath())
	if err != nil {
		return archive.AssetMetadata{}, fmt.Errorf("stat %s: %w", asset.FilePath(), err)
	}

	if !info.IsDir() {
		cached, ok, err := s.Lookup(ctx, asset.FilePath(), info.Size(), info.ModTime(), scanID)
		if err != nil {
			return archive.AssetMetadata{}, err
		}
		if ok {
			return *cached, nil
		}
	}

	meta, err := extractor.ExtractMetadata(ctx, asset)
	if err != nil {
		return archive.AssetMetadata{}, err
	}
	if err := s.Record(ctx, asset.FilePath(), meta, scanID); err != nil {
		return archive.AssetMetadata{}, err
	}
	return meta, nil
}
