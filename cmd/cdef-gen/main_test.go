package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/provide-io/cdef/pkg/cdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestModulesCommand(t *testing.T) {
	out, err := execute(t, "modules")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "src/core/sys/posix/fcntl_c.d\tcore.sys.posix.fcntl_c\tfcntl.h\t77", lines[0])
	assert.Equal(t, "src/core/sys/posix/poll_c.d\tcore.sys.posix.poll_c\tpoll.h\t16", lines[1])
}

func TestSourceCommand(t *testing.T) {
	out, err := execute(t, "source", "src/core/sys/posix/poll_c.d")
	require.NoError(t, err)
	assert.Contains(t, out, "#include <poll.h>")
	assert.Contains(t, out, "#ifdef POLLWRITE")
	assert.NotContains(t, out, "fcntl.h")

	_, err = execute(t, "source", "src/nope.d")
	assert.ErrorIs(t, err, cdef.ErrConfiguration)
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "cdef-gen "+version)
}

func TestGenerate_BadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "cdef.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("groups:\n  - output: lib/a.d\n    header: fcntl.h\n"), 0644))

	_, err := execute(t, "--config", cfg, "--dir", t.TempDir(), "--log-level", "error")
	assert.ErrorIs(t, err, cdef.ErrConfiguration)
}

func TestGenerate_BadMode(t *testing.T) {
	_, err := execute(t, "--mode", "999", "--dir", t.TempDir(), "--log-level", "error")
	assert.ErrorIs(t, err, cdef.ErrConfiguration)
}

func TestGenerateAndCheck(t *testing.T) {
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skipf("no C compiler: %v", err)
	}
	t.Setenv("CDEF_CACHE_DIR", t.TempDir())

	dir := t.TempDir()
	cfg := filepath.Join(t.TempDir(), "cdef.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
root: root/
groups:
  - output: root/a/b_c.d
    header: fcntl.h
    names: [O_CREAT, SOME_NONEXISTENT_FLAG]
`), 0644))

	common := []string{"--config", cfg, "--dir", dir, "--cc", "cc", "--cflags", "", "--log-level", "error"}

	_, err := execute(t, append([]string{"check"}, common...)...)
	assert.ErrorIs(t, err, cdef.ErrStale)

	_, err = execute(t, common...)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "root", "a", "b_c.d"))
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "module a.b_c;", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "enum O_CREAT = "), lines[1])
	assert.Equal(t, "// SOME_NONEXISTENT_FLAG not defined", lines[2])
	assert.Equal(t, "", lines[3])

	_, err = execute(t, append([]string{"check"}, common...)...)
	assert.NoError(t, err)
}
