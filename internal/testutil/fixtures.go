// Package testutil provides utilities for testing.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TempDir creates a temporary directory for testing and returns its path.
// The directory is automatically cleaned up when the test completes.
func TempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "coverage-analysis-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// TempFile creates a temporary file with the given content and returns its path.
// The file is automatically cleaned up when the test completes.
func TempFile(t *testing.T, content string) string {
	t.Helper()
	dir := TempDir(t)
	path := filepath.Join(dir, "temp_file")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// TempFileWithName creates a temporary file with the given name and content.
func TempFileWithName(t *testing.T, name, content string) string {
	t.Helper()
	dir := TempDir(t)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// WriteFile writes content to a file in the given directory.
func WriteFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

// ReadFile reads a file and returns its contents.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

// GroupLine renders one data line of a groups report in the fixed
// positional layout the engine expects.
func GroupLine(name string, covered, expected uint64) string {
	score := 0.0
	if expected > 0 {
		score = 100 * float64(covered) / float64(expected)
	}
	return fmt.Sprintf("%d %d %.2f %.2f 1 1 100 1 0 64 0 auto %s",
		covered, expected, score, score, name)
}

// GroupsReport builds a small groups report with a header block and
// the given data lines.
func GroupsReport(lines ...string) string {
	var b strings.Builder
	b.WriteString("Coverage Groups Report\n")
	b.WriteString("----------------------------------------\n")
	b.WriteString("COVERED EXPECTED PERCENT INST INSTANCES WEIGHT GOAL AT_LEAST PER_INSTANCE AUTO_BIN_MAX PRINT_MISSING COMMENT NAME\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// BigGroupsFile writes a groups report with n data lines to dir and
// returns its path. Group names are unique, so the parsed database
// must contain exactly n groups.
func BigGroupsFile(t testing.TB, dir string, n int) string {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("groups_%d.txt", n))
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 0; i < n; i++ {
		covered := uint64(i % 101)
		b.WriteString(GroupLine(fmt.Sprintf("cg_inst_%08d", i), covered, 100))
		b.WriteByte('\n')
		if b.Len() > 1<<20 {
			if _, err := f.WriteString(b.String()); err != nil {
				t.Fatalf("failed to write %s: %v", path, err)
			}
			b.Reset()
		}
	}
	if _, err := f.WriteString(b.String()); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
