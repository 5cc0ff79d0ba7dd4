package cmd

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panurus/nbkit/internal/config"
)

func joinList(paths ...string) string {
	return strings.Join(paths, string(os.PathListSeparator))
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return lines[len(lines)-1]
}

func TestPathAdd(t *testing.T) {
	isolate(t)
	t.Setenv("PYTHONPATH", joinList("/opt/a"))

	out, err := execute(t, "path", "add", "/opt/a", "/opt/b", "/opt/b")

	require.NoError(t, err)
	assert.Contains(t, out, "/opt/a is already on the search path")
	assert.Contains(t, out, "/opt/b added to the search path. It will be dropped when this process exits.")
	assert.Equal(t, 1, strings.Count(out, "/opt/b added"))
	assert.Equal(t, 1, strings.Count(out, "/opt/b is already on the search path"))
	assert.Equal(t, "PYTHONPATH="+joinList("/opt/a", "/opt/b"), lastLine(out))
}

func TestPathAdd_CustomEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NOTEBOOK_PATH", "/srv/lib")

	out, err := execute(t, "path", "add", "--path-env", "NOTEBOOK_PATH", "./src")

	require.NoError(t, err)
	assert.Equal(t, "NOTEBOOK_PATH="+joinList("/srv/lib", "./src"), lastLine(out))
}

func TestPathAdd_EnvFromResolver(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvPathEnv, "NOTEBOOK_PATH")
	t.Setenv("NOTEBOOK_PATH", "")

	out, err := execute(t, "path", "add", "/x")

	require.NoError(t, err)
	assert.Equal(t, "NOTEBOOK_PATH=/x", lastLine(out))
}

func TestPathAdd_JSON(t *testing.T) {
	isolate(t)
	t.Setenv("PYTHONPATH", "/opt/a")

	out, err := execute(t, "path", "add", "/opt/a", "/opt/b", "-o", "json")

	require.NoError(t, err)
	assert.NotContains(t, out, "added to the search path")

	var got struct {
		Env           string `json:"env"`
		Value         string `json:"value"`
		Registrations []struct {
			Path  string `json:"path"`
			Added bool   `json:"added"`
		} `json:"registrations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.Equal(t, "PYTHONPATH", got.Env)
	assert.Equal(t, joinList("/opt/a", "/opt/b"), got.Value)
	require.Len(t, got.Registrations, 2)
	assert.False(t, got.Registrations[0].Added)
	assert.True(t, got.Registrations[1].Added)
}

func TestPathAdd_RequiresArgs(t *testing.T) {
	isolate(t)

	_, err := execute(t, "path", "add")
	assert.Error(t, err)
}

func TestPathList(t *testing.T) {
	isolate(t)
	t.Setenv("PYTHONPATH", joinList("/opt/a", "", "/opt/b"))

	out, err := execute(t, "path", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "/opt/a")
	assert.Contains(t, out, "/opt/b")
	assert.Less(t, strings.Index(out, "/opt/a"), strings.Index(out, "/opt/b"))
}

func TestPathList_Empty(t *testing.T) {
	isolate(t)

	out, err := execute(t, "path", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "PYTHONPATH is empty")
}

func TestPathList_YAML(t *testing.T) {
	isolate(t)
	t.Setenv("PYTHONPATH", joinList("/opt/a", "/opt/b"))

	out, err := execute(t, "path", "list", "-o", "yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "env: PYTHONPATH")
	assert.Contains(t, out, "- /opt/a")
	assert.Contains(t, out, "- /opt/b")
}
