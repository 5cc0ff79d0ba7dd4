package archive

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panurus/nbkit/internal/testutil"
)

func zipFiles(t *testing.T, data []byte) []*zip.File {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return zr.File
}

func TestTopLevelDir(t *testing.T) {
	tests := []struct {
		name    string
		entries []testutil.ZipEntry
		want    string
		wantErr bool
	}{
		{
			name:    "directory record first",
			entries: []testutil.ZipEntry{{Name: "proj-main/"}, {Name: "proj-main/a.txt", Content: "a"}},
			want:    "proj-main",
		},
		{
			name:    "file first",
			entries: []testutil.ZipEntry{{Name: "proj/a/b.txt", Content: "b"}},
			want:    "proj",
		},
		{
			name:    "dot prefix",
			entries: []testutil.ZipEntry{{Name: "./proj/a.txt", Content: "a"}},
			want:    "proj",
		},
		{
			name:    "flat file",
			entries: []testutil.ZipEntry{{Name: "README", Content: "r"}},
			want:    "README",
		},
		{
			name:    "parent reference",
			entries: []testutil.ZipEntry{{Name: "../x", Content: "x"}},
			wantErr: true,
		},
		{
			name:    "empty",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := topLevelDir(zipFiles(t, testutil.ZipBytes(t, tt.entries...)))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnpack_RenamesAndRemovesZip(t *testing.T) {
	dest := t.TempDir()
	zipPath := filepath.Join(dest, "x.zip")
	require.NoError(t, os.WriteFile(zipPath, testutil.RepoZip(t, "x-1.0"), 0o644))

	require.NoError(t, unpack(zipPath, dest, "x"))

	data, err := os.ReadFile(filepath.Join(dest, "x", "pkg", "__init__.py"))
	require.NoError(t, err)
	assert.Equal(t, "VERSION = '1.0'\n", string(data))
	assert.NoFileExists(t, zipPath)
}
