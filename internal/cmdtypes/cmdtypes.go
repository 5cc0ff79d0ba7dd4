// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config, internal/cmd/path).
package cmdtypes

import (
	"github.com/panurus/nbkit/internal/config"
	oerrors "github.com/panurus/nbkit/internal/errors"
	"github.com/panurus/nbkit/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed into every sub-command constructor.
type GlobalConfig struct {
	// Config is the loaded config file. Never nil after startup.
	Config *config.Config

	// Resolved holds every value with the source it came from.
	Resolved *config.ResolvedConfig

	// Format is the --output format.
	Format output.OutputFormat

	Verbose bool
}

// ConfigPath returns the resolved config file path.
func (g *GlobalConfig) ConfigPath() string {
	if g.Resolved == nil {
		return ""
	}
	return g.Resolved.ConfigPath.Value
}

// Structured reports whether the output format is JSON or YAML.
func (g *GlobalConfig) Structured() bool {
	return g.Format == output.FormatJSON || g.Format == output.FormatYAML
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess           = oerrors.ExitSuccess
	ExitGeneralError      = oerrors.ExitGeneralError
	ExitValidationError   = oerrors.ExitValidationError
	ExitConnectivityError = oerrors.ExitConnectivityError
	ExitPermissionDenied  = oerrors.ExitPermissionDenied
	ExitNotFound          = oerrors.ExitNotFound
	ExitUnavailable       = oerrors.ExitUnavailable
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
