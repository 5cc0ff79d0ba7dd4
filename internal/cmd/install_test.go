package cmd

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panurus/nbkit/internal/config"
	oerrors "github.com/panurus/nbkit/internal/errors"
	"github.com/panurus/nbkit/internal/testutil"
)

// Fake interpreter scripts, run as: python -c <script> <module>.
const (
	pythonImports = `exit 0`
	pythonMissing = `echo "ModuleNotFoundError: No module named '$3'" >&2
exit 3`
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	return testutil.WriteFile(t, dir, "config.yaml", content)
}

// fakeTools creates a bin dir on PATH and points NBKIT_PYTHON at a fake
// interpreter running pythonScript.
func fakeTools(t *testing.T, pythonScript string) string {
	t.Helper()
	bin := t.TempDir()
	python := testutil.FakeExecutable(t, bin, "python", pythonScript)
	t.Setenv(config.EnvPython, python)
	testutil.PrependPath(t, bin)
	return bin
}

// installedMarker returns a fake interpreter that imports only once the
// marker file exists, plus the marker path for a fake manager to create.
func installedMarker(t *testing.T) (pythonScript, marker string) {
	t.Helper()
	marker = filepath.Join(t.TempDir(), "installed")
	return `test -f "` + marker + `" || exit 3`, marker
}

func TestInstall_Available(t *testing.T) {
	isolate(t)
	fakeTools(t, pythonImports)

	out, err := execute(t, "install", "numpy")

	require.NoError(t, err)
	assert.Contains(t, out, "numpy")
	assert.Contains(t, out, "available")
}

func TestInstall_NoInstall(t *testing.T) {
	isolate(t)
	bin := fakeTools(t, pythonMissing)
	testutil.FakeExecutable(t, bin, "pip", `echo "pip must not run" >&2; exit 99`)

	out, err := execute(t, "install", "numpy", "--no-install")

	require.Error(t, err)
	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitUnavailable, exitErr.Code)
	assert.True(t, exitErr.Printed)
	assert.True(t, errors.Is(err, oerrors.ErrUnavailable))
	assert.Contains(t, out, "not-installed")
}

func TestInstall_InstallsWithPip(t *testing.T) {
	isolate(t)
	python, marker := installedMarker(t)
	bin := fakeTools(t, python)
	testutil.FakeExecutable(t, bin, "pip", `touch "`+marker+`"; echo "Successfully installed $2"`)

	out, err := execute(t, "install", "requests")

	require.NoError(t, err)
	assert.FileExists(t, marker)
	assert.Contains(t, out, "available")
}

func TestInstall_VerbosePrintsTerminalOutput(t *testing.T) {
	isolate(t)
	python, marker := installedMarker(t)
	bin := fakeTools(t, python)
	testutil.FakeExecutable(t, bin, "pip", `touch "`+marker+`"; echo "Successfully installed $2"`)

	out, err := execute(t, "install", "requests", "-v")

	require.NoError(t, err)
	assert.Contains(t, out, "requests not installed")
	assert.Contains(t, out, "automatically installing requests using pip ...please wait.")
	assert.Contains(t, out, "requests is installed and available for import.")
	assert.Contains(t, out, "Terminal output")
	assert.Contains(t, out, "Successfully installed requests")
}

func TestInstall_VerboseWithoutPrintOutput(t *testing.T) {
	isolate(t)
	python, marker := installedMarker(t)
	bin := fakeTools(t, python)
	testutil.FakeExecutable(t, bin, "pip", `touch "`+marker+`"; echo "Successfully installed $2"`)

	out, err := execute(t, "install", "requests", "-v", "--print-output=false")

	require.NoError(t, err)
	assert.Contains(t, out, "requests is installed and available for import.")
	assert.NotContains(t, out, "Terminal output")
}

func TestInstall_InstallFailedJSON(t *testing.T) {
	isolate(t)
	bin := fakeTools(t, pythonMissing)
	testutil.FakeExecutable(t, bin, "pip", `echo "ERROR: No matching distribution found for $2"; exit 1`)

	out, err := execute(t, "install", "nosuchpkg", "-o", "json")

	require.Error(t, err)
	assert.Equal(t, ExitUnavailable, ExitCodeFromError(err))

	var got struct {
		Module  string `json:"module"`
		Outcome string `json:"outcome"`
		Manager string `json:"manager"`
		Exit    struct {
			Code   int    `json:"code"`
			Output string `json:"output"`
		} `json:"exit"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "nosuchpkg", got.Module)
	assert.Equal(t, "install-failed", got.Outcome)
	assert.Equal(t, "pip", got.Manager)
	assert.Equal(t, 1, got.Exit.Code)
	assert.Contains(t, got.Exit.Output, "No matching distribution")
}

func TestInstall_NotImportableAfterInstall(t *testing.T) {
	isolate(t)
	bin := fakeTools(t, pythonMissing)
	testutil.FakeExecutable(t, bin, "pip", `echo "Successfully installed $2"`)

	out, err := execute(t, "install", "brokenpkg")

	require.Error(t, err)
	assert.Equal(t, ExitUnavailable, ExitCodeFromError(err))
	assert.Contains(t, out, "not-importable")
}

func TestInstall_ManagerFromConfigFile(t *testing.T) {
	home := isolate(t)
	python, marker := installedMarker(t)
	bin := fakeTools(t, python)
	testutil.FakeExecutable(t, bin, "conda", `[ "$3" = "-y" ] || exit 2; touch "`+marker+`"`)
	testutil.FakeExecutable(t, bin, "pip", `exit 1`)
	cfgPath := writeConfig(t, home, "manager: conda\n")

	_, err := execute(t, "--config", cfgPath, "install", "scipy")

	require.NoError(t, err)
	assert.FileExists(t, marker)
}

func TestInstall_ManagerFlagOverridesEnv(t *testing.T) {
	isolate(t)
	python, marker := installedMarker(t)
	bin := fakeTools(t, python)
	testutil.FakeExecutable(t, bin, "conda", `exit 1`)
	testutil.FakeExecutable(t, bin, "pip", `touch "`+marker+`"`)
	t.Setenv(config.EnvManager, "conda")

	_, err := execute(t, "install", "scipy", "--manager", "pip")

	require.NoError(t, err)
	assert.FileExists(t, marker)
}

func TestInstall_InvalidManager(t *testing.T) {
	isolate(t)
	fakeTools(t, pythonMissing)

	_, err := execute(t, "install", "numpy", "--manager", "npm")

	require.Error(t, err)
	assert.Equal(t, ExitValidationError, ExitCodeFromError(err))
	var detail *oerrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Contains(t, detail.Hint, "--manager pip")
}

func TestInstall_InvalidManagerIgnoredWhenAvailable(t *testing.T) {
	isolate(t)
	fakeTools(t, pythonImports)

	_, err := execute(t, "install", "numpy", "--manager", "npm")

	assert.NoError(t, err)
}

func TestInstall_MissingInterpreterRunsNoManager(t *testing.T) {
	isolate(t)
	bin := t.TempDir()
	marker := filepath.Join(t.TempDir(), "pip-ran")
	testutil.FakeExecutable(t, bin, "pip", `touch "`+marker+`"`)
	testutil.PrependPath(t, bin)
	t.Setenv(config.EnvPython, filepath.Join(bin, "no-python"))

	_, err := execute(t, "install", "numpy")

	require.Error(t, err)
	assert.NotEqual(t, ExitUnavailable, ExitCodeFromError(err))
	assert.NoFileExists(t, marker)
}

func TestInstall_RequiresOneArg(t *testing.T) {
	isolate(t)

	_, err := execute(t, "install")
	assert.Error(t, err)

	_, err = execute(t, "install", "a", "b")
	assert.Error(t, err)
}
