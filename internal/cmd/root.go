package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	configcmd "github.com/panurus/nbkit/internal/cmd/config"
	pathcmd "github.com/panurus/nbkit/internal/cmd/path"
	"github.com/panurus/nbkit/internal/cmdtypes"
	"github.com/panurus/nbkit/internal/cmdutil"
	"github.com/panurus/nbkit/internal/config"
	oerrors "github.com/panurus/nbkit/internal/errors"
	"github.com/panurus/nbkit/internal/output"
	"github.com/panurus/nbkit/internal/version"
)

// rootFlags holds the global flags.
type rootFlags struct {
	config     string
	output     string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the nbkit CLI.
func NewRootCmd() *cobra.Command {
	var flags rootFlags
	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "nbkit",
		Short: "Notebook environment helpers",
		Long: `nbkit prepares the environment a notebook or script runs in.

It provides commands to:
  - Check that a Python module imports, installing it with pip or conda if not
  - Download and unpack a zip archive into a named directory, once
  - Add directories to the module search path`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, &flags, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: NBKIT_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "text",
		"Output format: "+strings.Join(output.ValidFormats(), ", "))
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewInstallCmd(cfg))
	rootCmd.AddCommand(NewFetchCmd(cfg))
	rootCmd.AddCommand(pathcmd.NewPathCmd(cfg))
	rootCmd.AddCommand(configcmd.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals loads the config file, resolves every value, and sets up
// logging. A config file that cannot be read is ignored so `config vet` and
// `config init` can still run.
func initializeGlobals(cmd *cobra.Command, flags *rootFlags, cfg *cmdtypes.GlobalConfig) error {
	format, ok := output.ParseOutputFormat(flags.output)
	if !ok {
		return oerrors.NewValidationError(
			"unknown output format "+flags.output, "",
			"Use one of: "+strings.Join(output.ValidFormats(), ", "))
	}

	configPath, err := config.ResolveConfigPath(flags.config)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	fileCfg, err := config.NewLoader().Load(configPath.Value)
	if err != nil {
		output.Warn("ignoring config file", "path", configPath.Value, "error", err)
		fileCfg = &config.Config{}
	}

	resolved, err := config.ResolveAll(config.ResolveAllOptions{
		ConfigFlag:      flags.config,
		ManagerFlag:     cmdutil.ChangedString(cmd, cmdutil.FlagManager),
		PythonFlag:      cmdutil.ChangedString(cmd, cmdutil.FlagPython),
		PathEnvFlag:     cmdutil.ChangedString(cmd, cmdutil.FlagPathEnv),
		PrintOutputFlag: cmdutil.ChangedBool(cmd, cmdutil.FlagPrintOutput),
		Config:          fileCfg,
	})
	if err != nil {
		return err
	}

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if fileCfg.Log.Timestamps != nil {
		logCfg.Timestamps = fileCfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	cfg.Config = fileCfg
	cfg.Resolved = resolved
	cfg.Format = format
	cfg.Verbose = flags.verbose

	if flags.verbose {
		info := version.GetInfo()
		output.Debug("nbkit started", "version", info.Version, "command", cmd.CommandPath())
		config.LogResolvedValues(resolved.Values())
	}

	return nil
}
