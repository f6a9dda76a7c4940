// Package archive declares the surface of a DANDI archive deployment that
// the rest of the tool programs against, together with the purely local
// implementations. Network clients live behind the Client interface and
// are injected by callers; nothing in this repository dials out.
package archive

import (
	"context"
	"time"

	"github.com/dandi/dandi-go/internal/files"
)

// AssetMetadata is the extracted metadata for one local asset.
type AssetMetadata struct {
	// Path is the asset's dandiset-relative path.
	Path string `json:"path"`

	// Size is the payload size in bytes; for directory assets such as
	// Zarr stores it is the sum over contained files.
	Size int64 `json:"size"`

	// Modified is the asset's modification time in UTC.
	Modified time.Time `json:"modified"`

	// ContentType is the MIME type guessed for the asset, empty when
	// nothing matched.
	ContentType string `json:"content_type,omitempty"`

	// Digest is the content digest used for upload verification, empty
	// until a Digester has run.
	Digest string `json:"digest,omitempty"`
}

// RemoteDandiset identifies a dandiset registered on an archive instance.
type RemoteDandiset struct {
	Identifier string
	Name       string
	URL        string
}

// Severity grades a validation diagnostic.
type Severity int

const (
	// SeverityHint flags cosmetic findings.
	SeverityHint Severity = iota + 1
	// SeverityWarning flags findings that do not block upload.
	SeverityWarning
	// SeverityError flags findings that make the asset unacceptable.
	SeverityError
)

// String returns the severity's uppercase label.
func (s Severity) String() string {
	switch s {
	case SeverityHint:
		return "HINT"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ValidationResult is a single diagnostic produced for an asset.
type ValidationResult struct {
	Severity Severity
	Path     string
	Message  string
}

// Client talks to a DANDI archive instance.
type Client interface {
	// RegisterDandiset creates a new dandiset on the instance and
	// returns its assigned identity.
	RegisterDandiset(ctx context.Context, name, description string) (*RemoteDandiset, error)

	// UploadAsset uploads a local asset and returns the remote asset
	// identifier.
	UploadAsset(ctx context.Context, asset files.LocalAsset) (string, error)
}

// Digester computes content digests for upload verification.
type Digester interface {
	Digest(ctx context.Context, filepath string) (string, error)
}

// MetadataExtractor derives AssetMetadata from a local asset.
type MetadataExtractor interface {
	ExtractMetadata(ctx context.Context, asset files.LocalAsset) (AssetMetadata, error)
}

// Validator produces diagnostics for assets inside a BIDS dataset.
type Validator interface {
	ValidateAsset(ctx context.Context, asset files.BIDSAsset) ([]ValidationResult, error)
}
