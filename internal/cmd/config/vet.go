package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panurus/nbkit/internal/cmdtypes"
	"github.com/panurus/nbkit/internal/cmdutil"
	"github.com/panurus/nbkit/internal/config"
	oerrors "github.com/panurus/nbkit/internal/errors"
	"github.com/panurus/nbkit/internal/output"
)

func newVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the nbkit configuration file",
		Long: `Validate the nbkit configuration file against the built-in schema.

Checks performed:
  1. Config file exists at the resolved path
  2. Config file is valid YAML
  3. Every key is known and every value has the right type

The config path is resolved using precedence:
  --config flag > NBKIT_CONFIG env > ~/.nbkit/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runVet(cfg.ConfigPath())
		},
	}
}

func runVet(configFile string) error {
	expandedPath, err := config.ExpandPath(configFile)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	output.Debug("validating config", "path", expandedPath)

	exists, err := config.ConfigFileExists(expandedPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return oerrors.NewNotFoundError("configuration file not found", expandedPath,
			"Run 'nbkit config init' to create a default configuration.")
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(expandedPath); err != nil {
		cmdutil.PrintConfigErrors("config validation failed", expandedPath, err)
		return &oerrors.ExitError{
			Code:    cmdtypes.ExitValidationError,
			Err:     fmt.Errorf("%w: %w", oerrors.ErrValidation, err),
			Printed: true,
		}
	}

	output.Println(output.FormatCheckmark("Config file is valid: " + expandedPath))
	return nil
}
