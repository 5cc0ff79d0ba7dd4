package cmd

import (
	"errors"
	"io/fs"
	"os/exec"

	oerrors "github.com/panurus/nbkit/internal/errors"
)

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for ExitError first
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrValidation):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrConnectivity):
		return ExitConnectivityError
	case errors.Is(err, oerrors.ErrPermission), errors.Is(err, fs.ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, oerrors.ErrNotFound), errors.Is(err, fs.ErrNotExist), errors.Is(err, exec.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, oerrors.ErrUnavailable):
		return ExitUnavailable
	default:
		return ExitGeneralError
	}
}
