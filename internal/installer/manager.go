package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	oerrors "github.com/panurus/nbkit/internal/errors"
)

// ErrInvalidManager is returned when a package manager other than conda or
// pip is requested. No subprocess is started in that case.
var ErrInvalidManager = errors.New(`package manager must be one of "conda" or "pip"`)

// notFoundExitCode is the exit status reported when the manager executable
// cannot be started, matching what a shell reports for a missing command.
const notFoundExitCode = 127

// Manager selects the package manager used to install a module.
type Manager string

const (
	// ManagerConda installs with `conda install <name> -y`.
	ManagerConda Manager = "conda"

	// ManagerPip installs with `pip install <name>`.
	ManagerPip Manager = "pip"
)

// ParseManager converts s into a Manager. Only the exact literals "conda"
// and "pip" are accepted.
func ParseManager(s string) (Manager, error) {
	m := Manager(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate returns an error wrapping ErrInvalidManager and ErrValidation
// unless m is conda or pip.
func (m Manager) Validate() error {
	switch m {
	case ManagerConda, ManagerPip:
		return nil
	default:
		return fmt.Errorf("%w: %w: got %q", oerrors.ErrValidation, ErrInvalidManager, string(m))
	}
}

// Alternate returns the other manager, used to suggest a fallback.
func (m Manager) Alternate() Manager {
	if m == ManagerConda {
		return ManagerPip
	}
	return ManagerConda
}

// String returns the manager name.
func (m Manager) String() string {
	return string(m)
}

// ExitResult is the exit status and combined stdout/stderr of one install run.
type ExitResult struct {
	Code   int    `json:"code"`
	Output string `json:"output,omitempty"`
}

// Success reports a zero exit status.
func (r ExitResult) Success() bool {
	return r.Code == 0
}

// Backend installs a named module with one package manager.
type Backend interface {
	// Install runs the manager synchronously. A non-zero exit is reported in
	// the ExitResult, not as an error; errors are reserved for cancellation.
	Install(ctx context.Context, name string) (ExitResult, error)
}

// CondaBackend installs modules with conda.
type CondaBackend struct {
	// Path is the conda executable. Empty means "conda" from PATH.
	Path string
}

// Install runs `conda install <name> -y`.
func (b *CondaBackend) Install(ctx context.Context, name string) (ExitResult, error) {
	return runCombined(ctx, pathOr(b.Path, "conda"), "install", name, "-y")
}

// PipBackend installs modules with pip.
type PipBackend struct {
	// Path is the pip executable. Empty means "pip" from PATH.
	Path string
}

// Install runs `pip install <name>`.
func (b *PipBackend) Install(ctx context.Context, name string) (ExitResult, error) {
	return runCombined(ctx, pathOr(b.Path, "pip"), "install", name)
}

// runCombined runs path with args and no shell, capturing stdout and stderr
// into one stream.
func runCombined(ctx context.Context, path string, args ...string) (ExitResult, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ExitResult{}, fmt.Errorf("%s: %w", CommandLine(path, args...), ctxErr)
	}

	result := ExitResult{Output: strings.TrimRight(out.String(), "\n")}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.Code = exitErr.ExitCode()
		return result, nil
	}

	// The process never started.
	result.Code = notFoundExitCode
	result.Output = err.Error()
	return result, nil
}

// CommandLine renders argv as a shell-quoted string for display.
func CommandLine(path string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{path}, args...) {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			q = a
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, " ")
}

func pathOr(path, fallback string) string {
	if path != "" {
		return path
	}
	return fallback
}
