// Package dandiset models the dandiset.yaml metadata document and its
// locked, atomic persistence at a dandiset root.
package dandiset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/dandi/dandi-go/internal/consts"
	"github.com/dandi/dandi-go/internal/filelock"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// header precedes the YAML document in every dandiset.yaml this tool
// writes. The archive owns this file; manual edits get overwritten.
const header = `# DO NOT EDIT this file manually.
# It is managed by dandi and may be overwritten on the next update.
`

// Metadata is the dandiset-level descriptive metadata stored in
// dandiset.yaml.
type Metadata struct {
	// Identifier is the six-digit dandiset identifier assigned by the
	// archive at registration; empty for unregistered drafts.
	Identifier string `yaml:"identifier,omitempty" validate:"omitempty,len=6,number"`

	// Name is the dandiset's title.
	Name string `yaml:"name" validate:"required,max=150"`

	// Description summarizes the dandiset.
	Description string `yaml:"description" validate:"required,max=3000"`

	// ContactEmail is the curator contact for the dandiset.
	ContactEmail string `yaml:"contact_email,omitempty" validate:"omitempty,email"`

	// License lists the SPDX identifiers of the data licenses.
	License []string `yaml:"license,omitempty" validate:"omitempty,dive,oneof=spdx:CC0-1.0 spdx:CC-BY-4.0 spdx:CC-BY-NC-4.0"`

	// URL points at the dandiset's landing page on its archive instance.
	URL string `yaml:"url,omitempty" validate:"omitempty,url"`
}

// Normalize brings the user-entered text fields to NFC form so the file's
// bytes do not depend on which platform composed the input.
func (m *Metadata) Normalize() {
	m.Name = norm.NFC.String(m.Name)
	m.Description = norm.NFC.String(m.Description)
}

// Validate checks the metadata against the archive's constraints.
func (m *Metadata) Validate() error {
	if err := validate.Struct(m); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}

// Write renders the metadata as YAML, preceded by the do-not-edit header.
func (m *Metadata) Write(w io.Writer) error {
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode dandiset metadata: %w", err)
	}
	return enc.Close()
}

// MetadataPath returns the location of the dandiset.yaml file inside
// dandisetPath.
func MetadataPath(dandisetPath string) string {
	return filepath.Join(dandisetPath, consts.DandisetMetadataFile)
}

// Load reads and parses the dandiset.yaml of the dandiset rooted at
// dandisetPath.
func Load(dandisetPath string) (*Metadata, error) {
	path := MetadataPath(dandisetPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}

// Save writes the metadata to the dandiset.yaml of the dandiset rooted at
// dandisetPath. The write is atomic and serialized against other dandi
// processes through a file lock.
func (m *Metadata) Save(dandisetPath string) error {
	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		return err
	}
	return filelock.LockAndWrite(MetadataPath(dandisetPath), buf.Bytes())
}
