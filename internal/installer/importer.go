package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/panurus/nbkit/internal/searchpath"
)

// ErrNotImportable is returned by an Importer when the module cannot be imported.
var ErrNotImportable = errors.New("module is not importable")

// importScript imports the module named by the first argument. The name is
// passed as argv, never spliced into the program text. Only ImportError maps
// to notImportableExitCode; any other exception fails with the interpreter's
// own status.
const importScript = `import importlib, sys
try:
    importlib.import_module(sys.argv[1])
except ImportError as e:
    print("%s: %s" % (type(e).__name__, e), file=sys.stderr)
    sys.exit(3)`

// notImportableExitCode is the status importScript exits with on ImportError.
const notImportableExitCode = 3

// Importer checks whether a module can be imported.
type Importer interface {
	// Import returns nil if the module imports, an error wrapping
	// ErrNotImportable if it is not found, and any other error if the
	// check itself could not be made.
	Import(ctx context.Context, name string) error
}

// PythonImporter checks importability by running a Python interpreter.
type PythonImporter struct {
	// Python is the interpreter. Empty means "python3" from PATH.
	Python string

	// SearchPath is exported to the interpreter through PathEnv. Nil means
	// the process-wide searchpath.Default().
	SearchPath *searchpath.SearchPath

	// PathEnv names the variable the search path is exported through.
	// Empty means searchpath.DefaultEnv.
	PathEnv string
}

// Import runs the interpreter with importScript. Only an ImportError
// yields ErrNotImportable; an interpreter that cannot start or a module that
// raises anything else yields a plain error.
func (p *PythonImporter) Import(ctx context.Context, name string) error {
	python := pathOr(p.Python, "python3")
	args := []string{"-c", importScript, name}

	cmd := exec.CommandContext(ctx, python, args...)
	cmd.Env = p.environ()

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", CommandLine(python, args...), ctxErr)
		}
		detail := lastLine(out.String())
		if detail == "" {
			detail = err.Error()
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("running %s: %w", python, err)
		}
		if exitErr.ExitCode() != notImportableExitCode {
			return fmt.Errorf("importing %s failed (exit %d): %s", name, exitErr.ExitCode(), detail)
		}
		return fmt.Errorf("%w: %s: %s", ErrNotImportable, name, detail)
	}

	return nil
}

func (p *PythonImporter) environ() []string {
	sp := p.SearchPath
	if sp == nil {
		sp = searchpath.Default()
	}
	env := os.Environ()
	if sp.Len() == 0 {
		return env
	}
	return append(env, sp.Environ(pathOr(p.PathEnv, searchpath.DefaultEnv)))
}

// lastLine returns the last non-empty line, which for a Python traceback is
// the exception message.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
