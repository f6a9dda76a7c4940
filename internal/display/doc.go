// Package display provides terminal UI utilities for progress and
// warning output from the dandi CLI.
//
// Use ProgressIndicator for multi-step operations:
//
//	progress := display.NewProgressIndicator(os.Stdout, "Checking assets", len(assets))
//	progress.Start()
//	for _, asset := range assets {
//	    progress.Step(asset.Path())
//	    // ... check asset ...
//	}
//	progress.Complete(fmt.Sprintf("Checked %d assets", len(assets)))
//
// Warnings carry an optional message, affected asset paths, and a
// suggested action:
//
//	display.WarnMissingMetadata(dandisetPath).Display(os.Stderr)
//
// Output uses raw ANSI escape codes (cyan for progress, green for
// success, yellow for warnings) and goes to whatever io.Writer the
// caller hands in, so commands can redirect it in tests.
package display
