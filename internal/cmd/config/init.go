package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/panurus/nbkit/internal/cmdtypes"
	"github.com/panurus/nbkit/internal/config"
	oerrors "github.com/panurus/nbkit/internal/errors"
	"github.com/panurus/nbkit/internal/output"
)

const configHeader = "# nbkit configuration\n" +
	"# Precedence: flag > NBKIT_* environment > this file > built-in default.\n\n"

func newInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new nbkit configuration file",
		Long: `Create a new nbkit configuration file with default values.

The configuration file is created at ~/.nbkit/config.yaml by default.
Use --config or NBKIT_CONFIG to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(cfg.ConfigPath(), force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(configFile string, force bool) error {
	expandedPath, err := config.ExpandPath(configFile)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(expandedPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: expandedPath,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w: %w", oerrors.ErrPermission, err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(expandedPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w: %w", oerrors.ErrPermission, err)
	}

	output.Println(output.FormatCheckmark("Config file created: " + expandedPath))
	output.Println("Validate with: nbkit config vet")
	return nil
}
