package main

import (
	"testing"

	"github.com/dandi/dandi-go/internal/cmd"
)

func TestRootCommandConstructs(t *testing.T) {
	rootCmd := cmd.NewRootCommand()
	if rootCmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}
	if rootCmd.Name() != "dandi" {
		t.Errorf("Expected command name 'dandi', got %q", rootCmd.Name())
	}
}
