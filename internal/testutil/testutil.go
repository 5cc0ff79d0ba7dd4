// Package testutil provides test helpers for nbkit tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// FakeExecutable writes an executable /bin/sh script named name into dir.
func FakeExecutable(t *testing.T, dir, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	path := WriteFile(t, dir, name, "#!/bin/sh\n"+script+"\n")
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("failed to chmod %s: %v", path, err)
	}
	return path
}

// PrependPath puts dir first on PATH for the duration of the test.
func PrependPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// ZipEntry is one file or directory in a test archive. Names ending in "/"
// are directories.
type ZipEntry struct {
	Name    string
	Content string
}

// ZipBytes builds an in-memory zip archive with entries in the given order.
func ZipBytes(t *testing.T, entries ...ZipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("failed to add %s to zip: %v", e.Name, err)
		}
		if e.Content != "" {
			if _, err := w.Write([]byte(e.Content)); err != nil {
				t.Fatalf("failed to write %s to zip: %v", e.Name, err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// RepoZip builds an archive shaped like a GitHub repository download: one
// top-level directory named root holding a README and a package file.
func RepoZip(t *testing.T, root string) []byte {
	t.Helper()
	return ZipBytes(t,
		ZipEntry{Name: root + "/"},
		ZipEntry{Name: root + "/README.md", Content: "# " + root + "\n"},
		ZipEntry{Name: root + "/pkg/"},
		ZipEntry{Name: root + "/pkg/__init__.py", Content: "VERSION = '1.0'\n"},
	)
}
