package cmdutil

import (
	"errors"
	"fmt"

	"github.com/panurus/nbkit/internal/cmdtypes"
	"github.com/panurus/nbkit/internal/config"
	"github.com/panurus/nbkit/internal/output"
)

// WriteStructured writes v to stdout in the global --output format.
func WriteStructured(g *cmdtypes.GlobalConfig, v any) error {
	if err := output.WriteStructured(output.Stdout(), g.Format, v); err != nil {
		return fmt.Errorf("writing %s output: %w", g.Format, err)
	}
	return nil
}

// PrintConfigErrors prints a config validation error in a user-friendly
// format: a summary line, then one line per offending field.
// For other errors, it falls back to the standard key-value log format.
func PrintConfigErrors(msg, path string, err error) {
	var verrs config.ValidationErrors
	if errors.As(err, &verrs) {
		output.Error(msg, "file", path)
		for _, e := range verrs {
			output.Error("  " + e.Error())
		}
		return
	}
	output.Error(msg, "file", path, "error", err)
}
