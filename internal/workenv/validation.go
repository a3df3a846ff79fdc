package workenv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	completeMarker   = ".probe.complete"
	incompleteMarker = ".probe.incomplete"

	// Cached probes are rebuilt after this long, picking up header updates
	maxMarkerAge = 7 * 24 * time.Hour
)

// ValidationMarker records a successfully built probe
type ValidationMarker struct {
	Timestamp time.Time `json:"timestamp"`
	Key       string    `json:"key"`
	Compiler  string    `json:"compiler"`
}

// IsValid checks if a workenv holds a complete build of artifact for key
func IsValid(path, key, artifact string) bool {
	data, err := os.ReadFile(filepath.Join(path, completeMarker))
	if err != nil {
		return false
	}

	var marker ValidationMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		return false
	}

	if marker.Key != key {
		return false
	}

	if time.Since(marker.Timestamp) > maxMarkerAge {
		return false
	}

	info, err := os.Stat(filepath.Join(path, artifact))
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	return true
}

// MarkComplete marks a workenv as built
func MarkComplete(path, key, compiler string) error {
	marker := ValidationMarker{
		Timestamp: time.Now(),
		Key:       key,
		Compiler:  compiler,
	}

	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return err
	}

	os.Remove(filepath.Join(path, incompleteMarker))

	return os.WriteFile(filepath.Join(path, completeMarker), data, 0644)
}

// MarkIncomplete records why a build in the workenv failed
func MarkIncomplete(path string, reason string) error {
	marker := map[string]interface{}{
		"timestamp": time.Now(),
		"reason":    reason,
	}

	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return err
	}

	os.Remove(filepath.Join(path, completeMarker))

	return os.WriteFile(filepath.Join(path, incompleteMarker), data, 0644)
}

// Clean removes a workenv and everything in it
func Clean(path string) error {
	return os.RemoveAll(path)
}
