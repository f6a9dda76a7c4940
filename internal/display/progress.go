package display

import (
	"fmt"
	"io"
)

// ProgressIndicator manages multi-step progress display with ANSI colors
type ProgressIndicator struct {
	writer  io.Writer
	label   string
	total   int
	current int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, label string, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer: w,
		label:  label,
		total:  total,
	}
}

// Start displays the header line
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "%s:\n", p.label)
}

// Step displays progress for the current item: [N/Total] path (cyan).
// Asset paths are shown in full since the path is the asset's identity
// within the dandiset.
func (p *ProgressIndicator) Step(path string) {
	p.current++
	fmt.Fprintf(p.writer, "\x1b[36m  [%d/%d] %s\x1b[0m\n", p.current, p.total, path)
}

// Complete displays a success message with a green checkmark
func (p *ProgressIndicator) Complete(message string) {
	fmt.Fprintf(p.writer, "\x1b[32m✓\x1b[0m %s\n", message)
}
