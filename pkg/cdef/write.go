package cdef

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileState describes an output file relative to its freshly rendered content.
type FileState int

const (
	StateWritten FileState = iota
	StateUnchanged
	StateStale
	StateMissing
)

func (s FileState) String() string {
	switch s {
	case StateWritten:
		return "written"
	case StateUnchanged:
		return "unchanged"
	case StateStale:
		return "stale"
	case StateMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// compareFile reports whether the file at path already holds data.
func compareFile(path string, data []byte) (FileState, error) {
	current, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return StateMissing, nil
	}
	if err != nil {
		return StateStale, err
	}
	if bytes.Equal(current, data) {
		return StateUnchanged, nil
	}
	return StateStale, nil
}

// stageFile writes data to a temporary file next to path and returns its
// name. The caller either commits it with os.Rename or removes it.
func stageFile(path string, data []byte, mode os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(format string, err error) (string, error) {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf(format, path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fail("failed to write %s: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail("failed to set mode on %s: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("failed to sync %s: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return tmpName, nil
}

// writeAllAtomic replaces every file in paths with the matching data. All
// contents are staged before the first file is replaced, so a failure while
// writing leaves every target untouched.
func writeAllAtomic(paths []string, data [][]byte, mode os.FileMode) error {
	staged := make([]string, 0, len(paths))
	for i, path := range paths {
		tmp, err := stageFile(path, data[i], mode)
		if err != nil {
			for _, name := range staged {
				os.Remove(name)
			}
			return err
		}
		staged = append(staged, tmp)
	}

	for i, tmp := range staged {
		if err := os.Rename(tmp, paths[i]); err != nil {
			for _, name := range staged[i:] {
				os.Remove(name)
			}
			return fmt.Errorf("failed to replace %s: %w", paths[i], err)
		}
	}
	return nil
}
