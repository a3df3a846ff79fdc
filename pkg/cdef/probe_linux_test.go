//go:build linux

package cdef

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestCCProber_DefaultFcntlTable(t *testing.T) {
	p := hostProber(t)

	g := DefaultConfig().Groups[0]
	entries, err := p.Probe(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, entries, len(g.Names))

	got := make(map[string]Entry, len(entries))
	for _, e := range entries {
		got[e.Name] = e
	}

	expected := map[string]int64{
		"F_DUPFD":             unix.F_DUPFD,
		"F_GETFD":             unix.F_GETFD,
		"F_SETFD":             unix.F_SETFD,
		"F_GETFL":             unix.F_GETFL,
		"F_SETFL":             unix.F_SETFL,
		"F_SETOWN":            unix.F_SETOWN,
		"F_GETOWN":            unix.F_GETOWN,
		"FD_CLOEXEC":          unix.FD_CLOEXEC,
		"F_RDLCK":             unix.F_RDLCK,
		"F_WRLCK":             unix.F_WRLCK,
		"F_UNLCK":             unix.F_UNLCK,
		"F_DUPFD_CLOEXEC":     unix.F_DUPFD_CLOEXEC,
		"O_CREAT":             unix.O_CREAT,
		"O_EXCL":              unix.O_EXCL,
		"O_NOCTTY":            unix.O_NOCTTY,
		"O_TRUNC":             unix.O_TRUNC,
		"O_APPEND":            unix.O_APPEND,
		"O_DSYNC":             unix.O_DSYNC,
		"O_SYNC":              unix.O_SYNC,
		"O_RDONLY":            unix.O_RDONLY,
		"O_RDWR":              unix.O_RDWR,
		"O_WRONLY":            unix.O_WRONLY,
		"O_ACCMODE":           unix.O_ACCMODE,
		"O_DIRECTORY":         unix.O_DIRECTORY,
		"O_CLOEXEC":           unix.O_CLOEXEC,
		"O_NOFOLLOW":          unix.O_NOFOLLOW,
		"O_NONBLOCK":          unix.O_NONBLOCK,
		"O_ASYNC":             unix.O_ASYNC,
		"O_DIRECT":            unix.O_DIRECT,
		"O_NOATIME":           unix.O_NOATIME,
		"O_PATH":              unix.O_PATH,
		"O_TMPFILE":           unix.O_TMPFILE,
		"LOCK_SH":             unix.LOCK_SH,
		"LOCK_EX":             unix.LOCK_EX,
		"LOCK_NB":             unix.LOCK_NB,
		"LOCK_UN":             unix.LOCK_UN,
		"AT_FDCWD":            unix.AT_FDCWD,
		"AT_EACCESS":          unix.AT_EACCESS,
		"AT_SYMLINK_FOLLOW":   unix.AT_SYMLINK_FOLLOW,
		"AT_SYMLINK_NOFOLLOW": unix.AT_SYMLINK_NOFOLLOW,
		"AT_REMOVEDIR":        unix.AT_REMOVEDIR,
	}
	for name, value := range expected {
		assert.Equal(t, Defined(name, value), got[name], name)
	}

	// The libc value of O_LARGEFILE depends on the ABI (0 on LP64 glibc),
	// so only its presence is checked.
	assert.True(t, got["O_LARGEFILE"].Defined, "O_LARGEFILE")

	// BSD-only flags stay undefined on Linux.
	for _, name := range []string{"O_SHLOCK", "O_EXLOCK", "F_DUP2FD", "FPOSIXSHM"} {
		assert.Equal(t, Undefined(name), got[name], name)
	}
}
