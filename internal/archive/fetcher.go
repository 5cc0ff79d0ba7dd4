// Package archive downloads a remote zip archive and unpacks it under a
// canonical local directory name.
//
// FetchAndUnpack is idempotent: it inspects which of the zip file and the
// unpacked directory already exist and only runs the stages still missing.
// Network and filesystem failures are returned as-is; nothing is rolled back,
// so an interrupted run may leave a partial extraction behind.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/panurus/nbkit/internal/output"
)

// Action reports which Stage 2 case FetchAndUnpack took.
type Action int

const (
	// ActionDownloaded means the archive was downloaded, extracted, renamed,
	// and its zip removed.
	ActionDownloaded Action = iota

	// ActionExtracted means an existing zip was extracted, renamed, and removed.
	ActionExtracted

	// ActionCleanedUp means both existed and only the zip was removed.
	ActionCleanedUp

	// ActionAlreadyUnpacked means only the unpacked directory existed.
	ActionAlreadyUnpacked
)

// String returns the status word for the action.
func (a Action) String() string {
	switch a {
	case ActionDownloaded:
		return output.StatusDownloaded
	case ActionExtracted:
		return output.StatusExtracted
	case ActionCleanedUp:
		return output.StatusCleanedUp
	case ActionAlreadyUnpacked:
		return output.StatusUnpacked
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// MarshalText encodes the action as its status word.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Request names the archive and where it ends up.
type Request struct {
	// URL is the remote zip archive.
	URL string `json:"url"`

	// DestDir is created if missing; both files below live in it.
	DestDir string `json:"destDir"`

	// ZipName is the local file name for the downloaded archive.
	ZipName string `json:"zipName"`

	// UnpackedName is the directory name the archive's top-level folder is renamed to.
	UnpackedName string `json:"unpackedName"`
}

// ZipPath returns DestDir/ZipName.
func (r Request) ZipPath() string {
	return filepath.Join(r.DestDir, r.ZipName)
}

// UnpackedPath returns DestDir/UnpackedName.
func (r Request) UnpackedPath() string {
	return filepath.Join(r.DestDir, r.UnpackedName)
}

func (r Request) validate() error {
	switch {
	case r.DestDir == "":
		return errors.New("destination directory must not be empty")
	case r.ZipName == "":
		return errors.New("zip name must not be empty")
	case r.UnpackedName == "":
		return errors.New("unpacked name must not be empty")
	}
	return nil
}

// Fetcher downloads and unpacks archives.
type Fetcher struct {
	// Client performs the download. Nil means http.DefaultClient.
	Client *http.Client

	// Out receives the stage progress lines. Nil means output.Stdout().
	Out io.Writer
}

// FetchAndUnpack ensures DestDir exists, then brings DestDir/UnpackedName into
// existence from the archive, skipping whatever has already been done.
func (f *Fetcher) FetchAndUnpack(ctx context.Context, req Request) (Action, error) {
	if err := req.validate(); err != nil {
		return 0, err
	}

	// Stage 1
	destExists, err := exists(req.DestDir)
	if err != nil {
		return 0, err
	}
	if destExists {
		f.println("Stage 1 of 2: local repository directory exists")
	} else {
		f.println("Stage 1 of 2: creating local repository directory")
		if err := os.MkdirAll(req.DestDir, 0o755); err != nil {
			return 0, fmt.Errorf("creating %s: %w", req.DestDir, err)
		}
	}

	// Stage 2
	zipPath, unpackedPath := req.ZipPath(), req.UnpackedPath()
	zipExists, err := isFile(zipPath)
	if err != nil {
		return 0, err
	}
	unpackedExists, err := exists(unpackedPath)
	if err != nil {
		return 0, err
	}

	log := output.ScopedLogger(req.UnpackedName)

	var action Action
	switch {
	case !zipExists && !unpackedExists:
		action = ActionDownloaded
		f.println("Stage 2 of 2: downloading repository zip file, unzipping and removing zip file")
		log.Debug("downloading", "url", req.URL, "to", zipPath)
		if err := download(ctx, f.client(), req.URL, zipPath); err != nil {
			return action, err
		}
		if err := unpack(zipPath, req.DestDir, req.UnpackedName); err != nil {
			return action, err
		}

	case zipExists && unpackedExists:
		action = ActionCleanedUp
		f.println("Stage 2 of 2: repository zip file exists and is unzipped, removing zip file")
		if err := os.Remove(zipPath); err != nil {
			return action, fmt.Errorf("removing %s: %w", zipPath, err)
		}

	case zipExists:
		action = ActionExtracted
		f.println("Stage 2 of 2: repository zip file exists, unzipping and removing zip file")
		if err := unpack(zipPath, req.DestDir, req.UnpackedName); err != nil {
			return action, err
		}

	default:
		action = ActionAlreadyUnpacked
		f.println("Stage 2 of 2: model repository already unzipped")
	}

	log.Debug("stage 2 complete", "action", action)
	f.println("done")
	return action, nil
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

func (f *Fetcher) println(msg string) {
	out := f.Out
	if out == nil {
		out = output.Stdout()
	}
	fmt.Fprintln(out, msg)
}

// FetchAndUnpack runs req with http.DefaultClient, printing to stdout.
func FetchAndUnpack(ctx context.Context, req Request) (Action, error) {
	return (&Fetcher{}).FetchAndUnpack(ctx, req)
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
