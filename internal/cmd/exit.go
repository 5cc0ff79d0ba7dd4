// Package cmd provides command implementations for the nbkit CLI.
package cmd

import oerrors "github.com/panurus/nbkit/internal/errors"

// Exit codes, aliased from internal/errors.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = oerrors.ExitSuccess

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = oerrors.ExitGeneralError

	// ExitValidationError indicates invalid input or configuration.
	ExitValidationError = oerrors.ExitValidationError

	// ExitConnectivityError indicates an archive could not be downloaded.
	ExitConnectivityError = oerrors.ExitConnectivityError

	// ExitPermissionDenied indicates insufficient filesystem permissions.
	ExitPermissionDenied = oerrors.ExitPermissionDenied

	// ExitNotFound indicates a file, directory, or executable was not found.
	ExitNotFound = oerrors.ExitNotFound

	// ExitUnavailable indicates a module is not importable.
	ExitUnavailable = oerrors.ExitUnavailable
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitConnectivityError:
		return "Connectivity Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	case ExitUnavailable:
		return "Module Unavailable"
	default:
		return "Unknown"
	}
}
