// Package installer verifies that a named module is importable and, when it
// is not, optionally installs it with conda or pip and verifies it again.
//
// The outcome of one call is one of four states. A missing module and a
// non-zero installer exit are outcomes, not errors. An import check that fails for
// another reason is returned as an error before any package manager runs,
// as are an invalid package manager and a cancelled context.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/panurus/nbkit/internal/output"
)

// Outcome is the state reached by one Ensure call.
type Outcome int

const (
	// OutcomeAvailable means the module imports.
	OutcomeAvailable Outcome = iota

	// OutcomeNotInstalled means the module does not import and installation
	// was not requested.
	OutcomeNotInstalled

	// OutcomeInstallFailed means the package manager exited non-zero.
	OutcomeInstallFailed

	// OutcomeNotImportable means the package manager succeeded but the
	// module still does not import.
	OutcomeNotImportable
)

// String returns the status word for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAvailable:
		return output.StatusAvailable
	case OutcomeNotInstalled:
		return output.StatusNotInstalled
	case OutcomeInstallFailed:
		return output.StatusInstallFailed
	case OutcomeNotImportable:
		return output.StatusNotImportable
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// MarshalText encodes the outcome as its status word.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// terminalRuleWidth is the width of the rules around the terminal output block.
const terminalRuleWidth = 18

const noTerminalOutput = "No terminal output to display"

// Options controls one Ensure call.
type Options struct {
	// Install runs the package manager when the module does not import.
	Install bool

	// Manager selects the package manager. Validated only when an install
	// is actually attempted.
	Manager Manager

	// PrintOutput prints the package manager's output. Only honored with Verbose.
	PrintOutput bool

	// Verbose prints human-readable progress.
	Verbose bool
}

// DefaultOptions returns the defaults: install with pip and print its output.
func DefaultOptions() Options {
	return Options{
		Install:     true,
		Manager:     ManagerPip,
		PrintOutput: true,
	}
}

// Result describes the outcome of one Ensure call.
type Result struct {
	Module  string      `json:"module"`
	Outcome Outcome     `json:"outcome"`
	Manager Manager     `json:"manager,omitempty"`
	Exit    *ExitResult `json:"exit,omitempty"`
}

// Available reports whether the module can be imported.
func (r Result) Available() bool {
	return r.Outcome == OutcomeAvailable
}

// Message returns the human diagnostic for the outcome.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeAvailable:
		return r.Module + " is installed and available for import."
	case OutcomeNotInstalled:
		return r.Module + " not installed. Please install using pip or conda before importing.\n" +
			"(Run this again with installation enabled and the manager set to either 'conda' or 'pip'.)"
	case OutcomeInstallFailed:
		return fmt.Sprintf("%s could not be installed using %s. Try using %s. If both fail, check module spelling.",
			r.Module, r.Manager, r.Manager.Alternate())
	case OutcomeNotImportable:
		return fmt.Sprintf("%s is installed but not importable. Install using %s and try again.",
			r.Module, r.Manager.Alternate())
	default:
		return r.Module + ": " + r.Outcome.String()
	}
}

// Installer checks and installs modules.
type Installer struct {
	// Importer checks importability.
	Importer Importer

	// Backends maps each manager to the backend that runs it.
	Backends map[Manager]Backend

	// Out receives verbose progress and terminal output. Nil means output.Stdout().
	Out io.Writer
}

// New returns an Installer using importer and the conda and pip executables
// from PATH.
func New(importer Importer) *Installer {
	return &Installer{
		Importer: importer,
		Backends: map[Manager]Backend{
			ManagerConda: &CondaBackend{},
			ManagerPip:   &PipBackend{},
		},
	}
}

// Ensure makes sure name can be imported, installing it if opts allow.
func (i *Installer) Ensure(ctx context.Context, name string, opts Options) (Result, error) {
	result := Result{Module: name, Outcome: OutcomeAvailable}
	log := output.ScopedLogger(name)

	importErr := i.Importer.Import(ctx, name)
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if importErr != nil && !errors.Is(importErr, ErrNotImportable) {
		return result, importErr
	}

	if importErr != nil {
		log.Debug("import failed", "error", importErr)
		result.Outcome = OutcomeNotInstalled

		if opts.Install {
			if err := opts.Manager.Validate(); err != nil {
				return result, err
			}
			result.Manager = opts.Manager

			if err := i.install(ctx, name, opts, &result); err != nil {
				return result, err
			}
		}
	}

	i.report(result, opts)
	return result, nil
}

// install runs the backend and checks the import again after a zero exit.
func (i *Installer) install(ctx context.Context, name string, opts Options, result *Result) error {
	backend, ok := i.Backends[opts.Manager]
	if !ok {
		return fmt.Errorf("no backend registered for %s", opts.Manager)
	}

	if opts.Verbose {
		i.println(name + " not installed")
		i.println(fmt.Sprintf("automatically installing %s using %s ...please wait.", name, opts.Manager))
	}

	exit, err := backend.Install(ctx, name)
	if err != nil {
		return err
	}
	result.Exit = &exit

	if !exit.Success() {
		result.Outcome = OutcomeInstallFailed
		return nil
	}

	result.Outcome = OutcomeAvailable
	if importErr := i.Importer.Import(ctx, name); importErr != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !errors.Is(importErr, ErrNotImportable) {
			return importErr
		}
		output.Debug("import failed after install", "module", name, "error", importErr)
		result.Outcome = OutcomeNotImportable
	}
	return nil
}

// report logs diagnostics for non-available outcomes and prints verbose output.
func (i *Installer) report(result Result, opts Options) {
	if result.Available() {
		if opts.Verbose {
			i.println(result.Message())
		}
	} else {
		output.Error(result.Message(), "module", result.Module, "outcome", result.Outcome)
	}

	if opts.Verbose && opts.PrintOutput {
		text := noTerminalOutput
		if result.Exit != nil && strings.TrimSpace(result.Exit.Output) != "" {
			text = result.Exit.Output
		}
		i.println(output.FormatRule("Terminal output", terminalRuleWidth))
		i.println(text)
	}
}

func (i *Installer) println(msg string) {
	out := i.Out
	if out == nil {
		out = output.Stdout()
	}
	fmt.Fprintln(out, msg)
}

var defaultInstaller = New(&PythonImporter{})

// InstallModule ensures name is importable using the default installer and
// returns whether it is available. The error is non-nil when the import check
// cannot be made, the manager is invalid, or ctx is cancelled.
func InstallModule(ctx context.Context, name string, opts Options) (bool, error) {
	result, err := defaultInstaller.Ensure(ctx, name, opts)
	if err != nil {
		return false, err
	}
	return result.Available(), nil
}
