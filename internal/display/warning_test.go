package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisplayWarningTitleOnly(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title: "No dandiset.yaml found",
	}

	w.Display(&buf)

	output := buf.String()

	if !strings.HasPrefix(output, "\x1b[33m") {
		t.Error("Expected output to start with yellow ANSI color code")
	}
	if !strings.Contains(output, "⚠️  Warning: No dandiset.yaml found") {
		t.Errorf("Expected warning title line, got: %s", output)
	}
	if !strings.HasSuffix(strings.TrimSpace(output), "\x1b[0m") {
		t.Error("Expected output to end with ANSI reset code")
	}
}

func TestDisplayWarningComplete(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title:      "Assets failed validation",
		Message:    "2 assets did not pass BIDS checks",
		Files:      []string{"sub-01/sub-01.nwb", "sub-02/sub-02.nwb"},
		Suggestion: "Fix the listed files and run 'dandi validate' again.",
	}

	w.Display(&buf)

	output := buf.String()

	components := []string{
		"⚠️",
		"Assets failed validation",
		"    2 assets did not pass BIDS checks",
		"    Affected files:",
		"      1. sub-01/sub-01.nwb",
		"      2. sub-02/sub-02.nwb",
		"    Suggestion:",
		"    Fix the listed files and run 'dandi validate' again.",
		"\x1b[33m",
		"\x1b[0m",
	}

	for _, component := range components {
		if !strings.Contains(output, component) {
			t.Errorf("Expected component %q in output, got: %s", component, output)
		}
	}
}

func TestDisplayWarningFileLabel(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		wantText string
	}{
		{
			name:     "single file",
			files:    []string{"dandiset.yaml"},
			wantText: "Affected file:",
		},
		{
			name:     "multiple files",
			files:    []string{"a.nwb", "b.nwb", "c.nwb"},
			wantText: "Affected files:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Warning{Title: "Problem", Files: tt.files}.Display(&buf)

			output := buf.String()
			if !strings.Contains(output, tt.wantText) {
				t.Errorf("Expected %q in output, got: %s", tt.wantText, output)
			}
		})
	}
}

func TestWarnAffectedAssets(t *testing.T) {
	paths := []string{"sub-01/sub-01.nwb", "stim/movie.mp4"}
	w := WarnAffectedAssets("Unrecognized assets", paths)

	if w.Title != "Unrecognized assets" {
		t.Errorf("Expected title %q, got %q", "Unrecognized assets", w.Title)
	}
	for i, p := range paths {
		if w.Files[i] != p {
			t.Errorf("Expected file[%d] to be %q, got %q", i, p, w.Files[i])
		}
	}
}

func TestWarnMissingMetadata(t *testing.T) {
	var buf bytes.Buffer
	WarnMissingMetadata("/data/ds000001").Display(&buf)

	output := buf.String()
	if !strings.Contains(output, "No dandiset.yaml found") {
		t.Errorf("Expected title in output, got: %s", output)
	}
	if !strings.Contains(output, "/data/ds000001") {
		t.Errorf("Expected dandiset path in output, got: %s", output)
	}
	if !strings.Contains(output, "dandi register") {
		t.Errorf("Expected register suggestion in output, got: %s", output)
	}
}
