// Package workenv manages the directories probes are compiled and run in
package workenv

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Key returns a stable identifier for the given inputs
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		// Length prefix keeps ("ab", "c") and ("a", "bc") apart
		fmt.Fprintf(h, "%d:%s;", len(p), p)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// GetWorkenvPath returns the cached workenv path for a key
func GetWorkenvPath(key string) string {
	return filepath.Join(GetCacheRoot(), "probes", key)
}

// GetCacheRoot returns the root cache directory
func GetCacheRoot() string {
	if cacheDir := os.Getenv("CDEF_CACHE_DIR"); cacheDir != "" {
		return cacheDir
	}

	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Caches", "cdef")
		}
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "cdef", "cache")
		}
	default:
		if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
			return filepath.Join(xdgCache, "cdef")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".cache", "cdef")
		}
	}

	return filepath.Join(os.TempDir(), "cdef", "cache")
}

// CreateWorkenv creates a workenv directory
func CreateWorkenv(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create workenv: %w", err)
	}
	return nil
}

// CreateScratch creates a fresh, uniquely named workenv under the cache root.
// The caller removes it with Clean.
func CreateScratch(prefix string) (string, error) {
	root := filepath.Join(GetCacheRoot(), "scratch")
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("failed to create scratch root: %w", err)
	}
	dir, err := os.MkdirTemp(root, prefix+"-")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch workenv: %w", err)
	}
	return dir, nil
}
