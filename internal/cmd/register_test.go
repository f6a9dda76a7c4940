package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dandi/dandi-go/internal/archive"
	"github.com/dandi/dandi-go/internal/dandiset"
	"github.com/dandi/dandi-go/internal/files"
)

// stubClient answers RegisterDandiset with a canned remote dandiset.
type stubClient struct {
	remote *archive.RemoteDandiset
	err    error
}

func (s *stubClient) RegisterDandiset(ctx context.Context, name, description string) (*archive.RemoteDandiset, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.remote, nil
}

func (s *stubClient) UploadAsset(ctx context.Context, asset files.LocalAsset) (string, error) {
	return "", errors.New("not implemented")
}

func TestRegisterWritesDandisetYAML(t *testing.T) {
	t.Setenv("DANDI_HOME", t.TempDir())
	dir := t.TempDir()

	output, err := execute(t, "register",
		"-n", "Electrophysiology of place cells",
		"-D", "Extracellular recordings from CA1 during navigation.",
		"-d", dir)
	if err != nil {
		t.Fatalf("register failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "Wrote "+dandiset.MetadataPath(dir)) {
		t.Errorf("Expected the written path in output, got: %s", output)
	}

	meta, err := dandiset.Load(dir)
	if err != nil {
		t.Fatalf("load written metadata: %v", err)
	}
	if meta.Name != "Electrophysiology of place cells" {
		t.Errorf("Expected the flag name, got %q", meta.Name)
	}
	if meta.URL != "https://dandiarchive.org" {
		t.Errorf("Expected the default instance URL, got %q", meta.URL)
	}
	if meta.Identifier != "" {
		t.Errorf("A local draft should have no identifier, got %q", meta.Identifier)
	}
}

func TestRegisterPrintsToStdoutWithoutDir(t *testing.T) {
	t.Setenv("DANDI_HOME", t.TempDir())

	output, err := execute(t, "register", "-n", "Stdout dandiset", "-D", "Printed, not written.")
	if err != nil {
		t.Fatalf("register failed: %v\noutput: %s", err, output)
	}

	if !strings.Contains(output, "DO NOT EDIT") {
		t.Errorf("Expected the managed-file header, got: %s", output)
	}
	if !strings.Contains(output, "name: Stdout dandiset") {
		t.Errorf("Expected the YAML document, got: %s", output)
	}
}

func TestRegisterRequiresNameAndDescription(t *testing.T) {
	t.Setenv("DANDI_HOME", t.TempDir())

	_, err := execute(t, "register", "-n", "Name only")
	if err == nil {
		t.Fatal("Expected an error without a description")
	}
	if !strings.Contains(err.Error(), "description") {
		t.Errorf("Expected the error to mention the description, got: %v", err)
	}
}

func TestRegisterFromReadme(t *testing.T) {
	t.Setenv("DANDI_HOME", t.TempDir())
	dir := t.TempDir()
	readme := filepath.Join(dir, "README.md")
	writeFile(t, readme, "# Readme dandiset\n\nRecordings described in the readme.\n")

	_, err := execute(t, "register", "--from-readme", readme, "-d", dir)
	if err != nil {
		t.Fatalf("register --from-readme failed: %v", err)
	}

	meta, err := dandiset.Load(dir)
	if err != nil {
		t.Fatalf("load written metadata: %v", err)
	}
	if meta.Name != "Readme dandiset" {
		t.Errorf("Expected the readme heading as name, got %q", meta.Name)
	}
	if meta.Description != "Recordings described in the readme." {
		t.Errorf("Expected the readme paragraph as description, got %q", meta.Description)
	}
}

func TestRegisterFlagsOverrideReadme(t *testing.T) {
	t.Setenv("DANDI_HOME", t.TempDir())
	dir := t.TempDir()
	readme := filepath.Join(dir, "README.md")
	writeFile(t, readme, "# Readme dandiset\n\nReadme description.\n")

	_, err := execute(t, "register", "--from-readme", readme, "-D", "Flag description wins.", "-d", dir)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	meta, err := dandiset.Load(dir)
	if err != nil {
		t.Fatalf("load written metadata: %v", err)
	}
	if meta.Name != "Readme dandiset" {
		t.Errorf("Expected the readme name to survive, got %q", meta.Name)
	}
	if meta.Description != "Flag description wins." {
		t.Errorf("Expected the flag description to win, got %q", meta.Description)
	}
}

func TestRegisterUnknownInstance(t *testing.T) {
	t.Setenv("DANDI_HOME", t.TempDir())

	_, err := execute(t, "register", "-n", "X", "-D", "Y", "--instance", "nonesuch")
	if err == nil {
		t.Fatal("Expected an error for an unknown instance")
	}
	if !strings.Contains(err.Error(), "unknown DANDI instance") {
		t.Errorf("Expected the unknown instance error, got: %v", err)
	}
}

func TestRegisterStagingInstanceURL(t *testing.T) {
	t.Setenv("DANDI_HOME", t.TempDir())
	dir := t.TempDir()

	_, err := execute(t, "register", "-n", "Staged", "-D", "On staging.", "--instance", "dandi-staging", "-d", dir)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	meta, err := dandiset.Load(dir)
	if err != nil {
		t.Fatalf("load written metadata: %v", err)
	}
	if meta.URL != "https://gui-staging.dandiarchive.org" {
		t.Errorf("Expected the staging GUI URL, got %q", meta.URL)
	}
}

func TestRegisterWithArchiveClient(t *testing.T) {
	t.Setenv("DANDI_HOME", t.TempDir())
	dir := t.TempDir()

	registerClient = &stubClient{remote: &archive.RemoteDandiset{
		Identifier: "000123",
		Name:       "Registered remotely",
		URL:        "https://dandiarchive.org/dandiset/000123/draft",
	}}
	defer func() { registerClient = nil }()

	_, err := execute(t, "register", "-n", "Registered remotely", "-D", "Created on the instance.", "-d", dir)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	meta, err := dandiset.Load(dir)
	if err != nil {
		t.Fatalf("load written metadata: %v", err)
	}
	if meta.Identifier != "000123" {
		t.Errorf("Expected the assigned identifier, got %q", meta.Identifier)
	}
	if meta.URL != "https://dandiarchive.org/dandiset/000123/draft" {
		t.Errorf("Expected the assigned URL, got %q", meta.URL)
	}
}

func TestRegisterClientFailure(t *testing.T) {
	t.Setenv("DANDI_HOME", t.TempDir())

	registerClient = &stubClient{err: errors.New("instance unreachable")}
	defer func() { registerClient = nil }()

	_, err := execute(t, "register", "-n", "X", "-D", "Y")
	if err == nil {
		t.Fatal("Expected an error when registration fails")
	}
	if !strings.Contains(err.Error(), "instance unreachable") {
		t.Errorf("Expected the client error, got: %v", err)
	}
}
