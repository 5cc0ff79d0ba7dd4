// Package cmdutil provides shared command utilities for nbkit subcommands.
// It centralizes flag group registration, lookups of explicitly set flags
// for the config resolver, and output helpers.
package cmdutil

import (
	"strconv"

	"github.com/spf13/cobra"
)

// Flag names read by the config resolver when they are set on the running command.
const (
	FlagManager     = "manager"
	FlagPython      = "python"
	FlagPathEnv     = "path-env"
	FlagPrintOutput = "print-output"
)

// InstallFlags holds the flags of the install command.
type InstallFlags struct {
	NoInstall   bool
	Manager     string
	PrintOutput bool
	Python      string
}

// AddTo registers the install flags on the given cobra command.
func (f *InstallFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.NoInstall, "no-install", false,
		"Only check importability, never run a package manager")
	cmd.Flags().StringVarP(&f.Manager, FlagManager, "m", "",
		`Package manager: "pip" or "conda" (env: NBKIT_MANAGER, default: pip)`)
	cmd.Flags().BoolVar(&f.PrintOutput, FlagPrintOutput, true,
		"Print package manager output in verbose runs (env: NBKIT_PRINT_OUTPUT)")
	cmd.Flags().StringVar(&f.Python, FlagPython, "",
		"Python interpreter used for the import check (env: NBKIT_PYTHON, default: python3)")
}

// PathEnvFlag holds the --path-env flag shared by commands that read the
// module search path.
type PathEnvFlag struct {
	PathEnv string
}

// AddTo registers --path-env as a persistent flag so subcommands inherit it.
func (f *PathEnvFlag) AddTo(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.PathEnv, FlagPathEnv, "",
		"Environment variable holding the module search path (env: NBKIT_PATH_ENV, default: PYTHONPATH)")
}

// ChangedString returns the value of the named flag if the user set it on
// cmd, and "" otherwise. Unknown flags return "".
func ChangedString(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return ""
	}
	return f.Value.String()
}

// ChangedBool returns the value of the named boolean flag if the user set it
// on cmd, and nil otherwise.
func ChangedBool(cmd *cobra.Command, name string) *bool {
	s := ChangedString(cmd, name)
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}
