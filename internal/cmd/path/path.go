// Package path provides CLI command implementations for the path command group.
package path

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/panurus/nbkit/internal/cmdtypes"
	"github.com/panurus/nbkit/internal/cmdutil"
	"github.com/panurus/nbkit/internal/output"
	"github.com/panurus/nbkit/internal/searchpath"
)

// addResult is the structured output of `path add`.
type addResult struct {
	Env           string                    `json:"env"`
	Value         string                    `json:"value"`
	Registrations []searchpath.Registration `json:"registrations"`
}

// listResult is the structured output of `path list`.
type listResult struct {
	Env     string   `json:"env"`
	Entries []string `json:"entries"`
}

// NewPathCmd creates the path command group.
func NewPathCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.PathEnvFlag

	c := &cobra.Command{
		Use:   "path",
		Short: "Inspect and extend the module search path",
		Long: `Inspect and extend the module search path.

The search path is read from an environment variable (PYTHONPATH unless
--path-env or NBKIT_PATH_ENV names another one). Changes cannot reach the
calling shell, so 'path add' prints the resulting NAME=value for it to export.`,
	}

	flags.AddTo(c)

	c.AddCommand(newAddCmd(cfg))
	c.AddCommand(newListCmd(cfg))

	return c
}

func newAddCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Append directories to the search path",
		Long: `Append directories to the search path, skipping any already present.

Paths are compared exactly as given. Each path gets one notice; the last line
is the updated variable.

Examples:
  # Add two directories and export the result
  export "$(nbkit path add ./lib ./vendor | tail -n 1)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAdd(args, cfg)
		},
	}
}

func runAdd(paths []string, cfg *cmdtypes.GlobalConfig) error {
	env := cfg.Resolved.PathEnv.Value
	sp := searchpath.FromEnv(env)
	sp.Out = output.Stdout()
	if cfg.Structured() {
		sp.Out = io.Discard
	}

	regs := sp.Register(paths...)
	for _, r := range regs {
		output.Debug("search path entry", "path", r.Path, "status", r.Status())
	}

	if cfg.Structured() {
		return cmdutil.WriteStructured(cfg, addResult{
			Env:           env,
			Value:         sp.String(),
			Registrations: regs,
		})
	}

	output.Println(sp.Environ(env))
	return nil
}

func newListCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the search path entries in order",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			env := cfg.Resolved.PathEnv.Value
			entries := searchpath.FromEnv(env).Entries()

			if cfg.Structured() {
				if entries == nil {
					entries = []string{}
				}
				return cmdutil.WriteStructured(cfg, listResult{Env: env, Entries: entries})
			}

			if len(entries) == 0 {
				output.Println(env + " is empty")
				return nil
			}
			output.Println(output.RenderPathTable(entries))
			return nil
		},
	}
}
