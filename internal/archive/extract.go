package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyArchive is returned when the archive has no entries to name a
// top-level directory from.
var ErrEmptyArchive = errors.New("archive has no entries")

// topLevelDir returns the first path segment of the first entry's name.
func topLevelDir(files []*zip.File) (string, error) {
	if len(files) == 0 {
		return "", ErrEmptyArchive
	}
	name := strings.TrimPrefix(files[0].Name, "./")
	top, _, _ := strings.Cut(name, "/")
	if top == "" || top == "." || top == ".." {
		return "", fmt.Errorf("invalid first entry %q in archive", files[0].Name)
	}
	return top, nil
}

// unpack extracts zipPath into destDir, renames the archive's top-level
// directory to unpackedName, and removes zipPath.
func unpack(zipPath, destDir, unpackedName string) (err error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", zipPath, err)
	}
	defer func() {
		if zr == nil {
			return
		}
		if closeErr := zr.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	top, err := topLevelDir(zr.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", zipPath, err)
	}

	if err = extractAll(zr.File, destDir); err != nil {
		return err
	}

	// Windows cannot remove a file that is still open.
	closeErr := zr.Close()
	zr = nil
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", zipPath, closeErr)
	}

	from := filepath.Join(destDir, top)
	to := filepath.Join(destDir, unpackedName)
	if from != to {
		if err = os.Rename(from, to); err != nil {
			return fmt.Errorf("renaming %s: %w", top, err)
		}
	}

	if err = os.Remove(zipPath); err != nil {
		return fmt.Errorf("removing %s: %w", zipPath, err)
	}

	return nil
}

// extractAll writes every entry under destDir, keeping relative paths.
func extractAll(files []*zip.File, destDir string) error {
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", destDir, err)
	}

	for _, file := range files {
		destPath := filepath.Join(absDest, filepath.FromSlash(file.Name))

		relPath, relErr := filepath.Rel(absDest, destPath)
		if relErr != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
			return fmt.Errorf("invalid path in archive: %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", file.Name, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return fmt.Errorf("creating parent of %s: %w", file.Name, err)
		}

		if err := extractFile(file, destPath); err != nil {
			return fmt.Errorf("extracting %s: %w", file.Name, err)
		}
	}

	return nil
}

func extractFile(file *zip.File, destPath string) (err error) {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	//nolint:gosec // G110: archives come from URLs the caller chose
	_, err = io.Copy(destFile, rc)
	return err
}
