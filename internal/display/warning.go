package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related asset paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		label := "Affected files:"
		if len(w.Files) == 1 {
			label = "Affected file:"
		}
		b.WriteString("    ")
		b.WriteString(label)
		b.WriteString("\n")
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}

// WarnAffectedAssets creates a warning listing the asset paths it concerns.
func WarnAffectedAssets(title string, paths []string) Warning {
	return Warning{
		Title: title,
		Files: paths,
	}
}

// WarnMissingMetadata creates the warning shown when a dandiset
// directory has no dandiset.yaml.
func WarnMissingMetadata(dandisetPath string) Warning {
	return Warning{
		Title:      "No dandiset.yaml found",
		Message:    fmt.Sprintf("%s does not look like a registered dandiset.", dandisetPath),
		Suggestion: "Run 'dandi register' to create dandiset.yaml first.",
	}
}
