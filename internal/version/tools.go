package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"time"
)

// toolVersionRegex matches the first dotted version in tool output, e.g.
// "pip 24.0 from ..." or "conda 24.1.2" or "Python 3.12.1".
var toolVersionRegex = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// detectTimeout bounds each `--version` call.
const detectTimeout = 5 * time.Second

// ToolInfo describes one external executable nbkit runs.
type ToolInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

// String returns a one-line summary for the version command.
func (t ToolInfo) String() string {
	if !t.Found {
		return fmt.Sprintf("  %-8s not found", t.Name)
	}
	v := t.Version
	if v == "" {
		v = "unknown (" + t.Message + ")"
	}
	return fmt.Sprintf("  %-8s %s (%s)", t.Name, v, t.Path)
}

// DetectTools queries the interpreter and both package managers.
func DetectTools(ctx context.Context, python string) []ToolInfo {
	return []ToolInfo{
		DetectTool(ctx, python),
		DetectTool(ctx, "pip"),
		DetectTool(ctx, "conda"),
	}
}

// DetectTool finds name in PATH and asks it for its version.
func DetectTool(ctx context.Context, name string) ToolInfo {
	path, err := exec.LookPath(name)
	if err != nil {
		return ToolInfo{Name: name, Message: name + " not found in PATH"}
	}

	info := ToolInfo{Name: name, Path: path, Found: true}
	v, err := toolVersion(ctx, path)
	if err != nil {
		info.Message = err.Error()
		return info
	}
	info.Version = v
	return info
}

func toolVersion(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return extractVersion(out.String())
}

// extractVersion extracts the first version number from tool output.
func extractVersion(output string) (string, error) {
	match := toolVersionRegex.FindString(output)
	if match == "" {
		return "", &versionParseError{output: output}
	}
	return match, nil
}

// versionParseError indicates failure to parse version output.
type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse version from output: " + e.output
}
