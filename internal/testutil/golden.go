// Package testutil provides helpers shared by package tests.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var updateGolden = flag.Bool("update-golden", false, "update golden files")

// GoldenFile compares rendered output against files under a testdata directory.
type GoldenFile struct {
	t        *testing.T
	basePath string
}

// NewGoldenFile creates a golden file tester rooted at basePath.
func NewGoldenFile(t *testing.T, basePath string) *GoldenFile {
	t.Helper()

	if err := os.MkdirAll(basePath, 0750); err != nil {
		t.Fatalf("failed to create golden file directory: %v", err)
	}

	return &GoldenFile{
		t:        t,
		basePath: basePath,
	}
}

// Assert compares actual with <basePath>/<name>.golden and fails the test if they differ.
func (g *GoldenFile) Assert(name, actual string) {
	g.t.Helper()

	goldenPath := filepath.Join(g.basePath, name+".golden")

	if *updateGolden {
		if err := os.WriteFile(goldenPath, []byte(actual), 0600); err != nil {
			g.t.Fatalf("failed to update golden file: %v", err)
		}
		g.t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath) // #nosec G304 - goldenPath is constructed from controlled inputs
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with -update-golden to create it", goldenPath)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) != actual {
		g.t.Errorf("output does not match golden file: %s", goldenPath)
		g.t.Errorf("Diff:\n%s", Diff(string(expected), actual))
	}
}

// Diff returns the differing lines of two texts, expected first.
func Diff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var diff strings.Builder
	for i := range max(len(expectedLines), len(actualLines)) {
		var expectedLine, actualLine string
		if i < len(expectedLines) {
			expectedLine = expectedLines[i]
		}
		if i < len(actualLines) {
			actualLine = actualLines[i]
		}

		if expectedLine != actualLine {
			diff.WriteString("- ")
			diff.WriteString(expectedLine)
			diff.WriteString("\n+ ")
			diff.WriteString(actualLine)
			diff.WriteString("\n")
		}
	}

	return diff.String()
}
