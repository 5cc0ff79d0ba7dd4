package cmd

import (
	"github.com/spf13/cobra"

	"github.com/panurus/nbkit/internal/cmdtypes"
	"github.com/panurus/nbkit/internal/cmdutil"
	"github.com/panurus/nbkit/internal/output"
	"github.com/panurus/nbkit/internal/version"
)

// versionResult is the structured output of the version command.
type versionResult struct {
	version.Info
	Tools []version.ToolInfo `json:"tools"`
}

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show nbkit version information.

Displays:
  - nbkit version, commit, and build date
  - the Python interpreter, pip, and conda found in PATH`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			info := version.GetInfo()
			tools := version.DetectTools(c.Context(), cfg.Resolved.Python.Value)

			if cfg.Structured() {
				return cmdutil.WriteStructured(cfg, versionResult{Info: info, Tools: tools})
			}
			output.Println(version.FullVersionString(info, tools))
			return nil
		},
	}
}
