package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panurus/nbkit/internal/cmdtypes"
	"github.com/panurus/nbkit/internal/cmdutil"
	oerrors "github.com/panurus/nbkit/internal/errors"
	"github.com/panurus/nbkit/internal/installer"
	"github.com/panurus/nbkit/internal/output"
	"github.com/panurus/nbkit/internal/searchpath"
)

// NewInstallCmd creates the install command.
func NewInstallCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.InstallFlags

	c := &cobra.Command{
		Use:   "install <module>",
		Short: "Make a Python module importable",
		Long: `Check that a Python module imports, installing it if it does not.

The import check runs the configured interpreter with the module search path
exported. When the module does not import, the package manager installs it
and the import is checked again.

Outcomes:
  available        the module imports
  not-installed    the module does not import and --no-install was given
  install-failed   the package manager exited non-zero
  not-importable   the package manager succeeded but the import still fails

Every outcome other than available exits with code 6.

Examples:
  # Install numpy with pip if it is missing
  nbkit install numpy

  # Use conda and show its output
  nbkit install scipy --manager conda -v

  # Only check
  nbkit install pandas --no-install -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runInstall(c.Context(), args[0], &flags, cfg)
		},
	}

	flags.AddTo(c)

	return c
}

func runInstall(ctx context.Context, name string, flags *cmdutil.InstallFlags, cfg *cmdtypes.GlobalConfig) error {
	resolved := cfg.Resolved
	pathEnv := resolved.PathEnv.Value

	inst := installer.New(&installer.PythonImporter{
		Python:     resolved.Python.Value,
		SearchPath: searchpath.FromEnv(pathEnv),
		PathEnv:    pathEnv,
	})
	inst.Out = output.Stdout()

	opts := installer.Options{
		Install:     !flags.NoInstall,
		Manager:     installer.Manager(resolved.Manager.Value),
		PrintOutput: resolved.PrintOutputEnabled(),
		Verbose:     cfg.Verbose,
	}

	var result installer.Result
	err := output.RunWithSpinner(ctx, func() error {
		var ensureErr error
		result, ensureErr = inst.Ensure(ctx, name, opts)
		return ensureErr
	},
		output.WithTitle(fmt.Sprintf("Checking %s", name)),
		output.WithSpinner(!cfg.Verbose && !cfg.Structured()),
	)
	if err != nil {
		if errors.Is(err, installer.ErrInvalidManager) {
			return &oerrors.DetailError{
				Type:    "validation failed",
				Message: err.Error(),
				Hint:    "Use --manager pip or --manager conda, or set NBKIT_MANAGER.",
				Cause:   err,
			}
		}
		return err
	}

	if cfg.Structured() {
		if err := cmdutil.WriteStructured(cfg, result); err != nil {
			return err
		}
	} else if !cfg.Verbose {
		output.Println(output.FormatStatusLine(name, result.Outcome.String()))
	}

	if !result.Available() {
		return &oerrors.ExitError{
			Code:    ExitUnavailable,
			Err:     oerrors.NewUnavailableError(name, result.Outcome.String(), ""),
			Printed: true,
		}
	}

	return nil
}
