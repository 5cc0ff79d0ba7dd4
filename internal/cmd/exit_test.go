package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"

	oerrors "github.com/panurus/nbkit/internal/errors"
	"github.com/panurus/nbkit/internal/installer"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			wantCode: ExitSuccess,
		},
		{
			name:     "validation error",
			err:      oerrors.ErrValidation,
			wantCode: ExitValidationError,
		},
		{
			name:     "wrapped validation error",
			err:      oerrors.Wrap(oerrors.ErrValidation, "schema check failed"),
			wantCode: ExitValidationError,
		},
		{
			name:     "invalid package manager",
			err:      installer.Manager("npm").Validate(),
			wantCode: ExitValidationError,
		},
		{
			name:     "connectivity error",
			err:      fmt.Errorf("downloading: %w", oerrors.ErrConnectivity),
			wantCode: ExitConnectivityError,
		},
		{
			name:     "permission error",
			err:      oerrors.ErrPermission,
			wantCode: ExitPermissionDenied,
		},
		{
			name:     "filesystem permission error",
			err:      &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission},
			wantCode: ExitPermissionDenied,
		},
		{
			name:     "not found error",
			err:      oerrors.NewNotFoundError("missing", "/x", ""),
			wantCode: ExitNotFound,
		},
		{
			name:     "missing executable",
			err:      &exec.Error{Name: "conda", Err: exec.ErrNotFound},
			wantCode: ExitNotFound,
		},
		{
			name:     "unavailable module",
			err:      oerrors.NewUnavailableError("numpy", "install-failed", ""),
			wantCode: ExitUnavailable,
		},
		{
			name:     "exit error with custom code",
			err:      &oerrors.ExitError{Code: 42, Err: errors.New("custom")},
			wantCode: 42,
		},
		{
			name:     "unknown error returns general error",
			err:      errors.New("something went wrong"),
			wantCode: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{ExitSuccess, "Success"},
		{ExitGeneralError, "General Error"},
		{ExitValidationError, "Validation Error"},
		{ExitConnectivityError, "Connectivity Error"},
		{ExitPermissionDenied, "Permission Denied"},
		{ExitNotFound, "Not Found"},
		{ExitUnavailable, "Module Unavailable"},
		{99, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeName(tt.code))
		})
	}
}
