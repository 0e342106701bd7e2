package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the autofill binary for testing
func getBinaryPath(t *testing.T) string {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath, err := filepath.Abs(filepath.Join("..", "..", "bin", "autofill"))
	if err != nil {
		t.Fatalf("failed to resolve binary path: %v", err)
	}
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/autofill ./cmd/autofill'", binaryPath)
	}
	return binaryPath
}
