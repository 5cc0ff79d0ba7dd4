package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panurus/nbkit/internal/archive"
	"github.com/panurus/nbkit/internal/cmdtypes"
	"github.com/panurus/nbkit/internal/cmdutil"
	"github.com/panurus/nbkit/internal/output"
)

// fetchResult is the structured output of the fetch command.
type fetchResult struct {
	archive.Request
	Action archive.Action `json:"action"`
	Path   string         `json:"path"`
}

// NewFetchCmd creates the fetch command.
func NewFetchCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <url> <dest> <zip-name> <unpacked-name>",
		Short: "Download and unpack a zip archive once",
		Long: `Download a zip archive into a directory and unpack it under a fixed name.

The archive's top-level folder is renamed to <unpacked-name> and the zip is
removed. Running the command again does nothing once <dest>/<unpacked-name>
exists; a zip left behind by an interrupted run is extracted without
downloading it again.

Examples:
  # Fetch a GitHub repository snapshot into ./data/tools
  nbkit fetch https://github.com/org/tools/archive/refs/heads/main.zip ./data tools.zip tools`,
		Args: cobra.ExactArgs(4),
		RunE: func(c *cobra.Command, args []string) error {
			req := archive.Request{
				URL:          args[0],
				DestDir:      args[1],
				ZipName:      args[2],
				UnpackedName: args[3],
			}
			return runFetch(c.Context(), req, cfg)
		},
	}
}

func runFetch(ctx context.Context, req archive.Request, cfg *cmdtypes.GlobalConfig) error {
	// Stage lines are buffered so they are not overdrawn by the spinner.
	var stages bytes.Buffer
	fetcher := &archive.Fetcher{Out: &stages}
	if cfg.Verbose {
		fetcher.Out = output.Stdout()
	}

	var action archive.Action
	err := output.RunWithSpinner(ctx, func() error {
		var fetchErr error
		action, fetchErr = fetcher.FetchAndUnpack(ctx, req)
		return fetchErr
	},
		output.WithTitle(fmt.Sprintf("Fetching %s", req.ZipName)),
		output.WithSpinner(!cfg.Verbose && !cfg.Structured()),
	)
	if err != nil {
		if !cfg.Verbose && !cfg.Structured() {
			writeLines(output.Stdout(), stages.String())
		}
		return err
	}

	if cfg.Structured() {
		return cmdutil.WriteStructured(cfg, fetchResult{
			Request: req,
			Action:  action,
			Path:    req.UnpackedPath(),
		})
	}

	if !cfg.Verbose {
		writeLines(output.Stdout(), stages.String())
	}
	output.Println(output.FormatStatusLine(req.UnpackedPath(), action.String()))
	return nil
}

func writeLines(w io.Writer, s string) {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return
	}
	fmt.Fprintln(w, s)
}
