package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	oerrors "github.com/panurus/nbkit/internal/errors"
)

// download retrieves url into dest with a single GET. A partially written
// file is left in place on failure.
func download(ctx context.Context, client *http.Client, url, dest string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req) //nolint:gosec // URL is supplied by the caller
	if err != nil {
		return fmt.Errorf("%w: downloading %s: %w", oerrors.ErrConnectivity, url, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: downloading %s: status %s", oerrors.ErrConnectivity, url, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("saving %s: %w", dest, err)
	}

	return nil
}
