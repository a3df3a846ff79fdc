package cdef

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Default naming convention for generated modules.
const (
	DefaultRoot      = "src/"
	DefaultSuffix    = ".d"
	DefaultSeparator = '.'
)

// Layout maps output paths to module names and back.
//
// An output path has the shape Root + a/b/c + Suffix. The module name is the
// middle part with every '/' replaced by Separator. Each component must be an
// identifier, which keeps the mapping bijective.
type Layout struct {
	Root      string
	Suffix    string
	Separator byte
}

// DefaultLayout returns the src/<module path>.d convention.
func DefaultLayout() Layout {
	return Layout{
		Root:      DefaultRoot,
		Suffix:    DefaultSuffix,
		Separator: DefaultSeparator,
	}
}

func (l Layout) separator() byte {
	if l.Separator == 0 {
		return DefaultSeparator
	}
	return l.Separator
}

// Validate checks that outputs under l stay inside the directory they are
// resolved against: Root must be relative, use '/' separators and contain
// no ".." component, and Suffix must not contain a separator.
func (l Layout) Validate() error {
	var result *multierror.Error

	native := filepath.FromSlash(l.Root)
	if strings.HasPrefix(l.Root, "/") || filepath.IsAbs(native) || filepath.VolumeName(native) != "" {
		result = multierror.Append(result, fmt.Errorf("%w: root %q is absolute", ErrConfiguration, l.Root))
	}
	if strings.ContainsRune(l.Root, '\\') {
		result = multierror.Append(result, fmt.Errorf("%w: root %q must use '/' separators", ErrConfiguration, l.Root))
	}
	for _, part := range strings.Split(l.Root, "/") {
		if part == ".." {
			result = multierror.Append(result, fmt.Errorf("%w: root %q leaves the output directory", ErrConfiguration, l.Root))
			break
		}
	}
	if strings.ContainsAny(l.Suffix, "/\\") {
		result = multierror.Append(result, fmt.Errorf("%w: suffix %q contains a path separator", ErrConfiguration, l.Suffix))
	}

	return result.ErrorOrNil()
}

// ModuleName derives the module name from an output path.
func (l Layout) ModuleName(path string) (string, error) {
	if !strings.HasPrefix(path, l.Root) {
		return "", fmt.Errorf("%w: output %q does not start with %q", ErrConfiguration, path, l.Root)
	}
	if !strings.HasSuffix(path, l.Suffix) {
		return "", fmt.Errorf("%w: output %q does not end with %q", ErrConfiguration, path, l.Suffix)
	}
	if len(path) <= len(l.Root)+len(l.Suffix) {
		return "", fmt.Errorf("%w: output %q has an empty module path", ErrConfiguration, path)
	}

	parts := strings.Split(path[len(l.Root):len(path)-len(l.Suffix)], "/")
	for _, part := range parts {
		if !IsIdentifier(part) {
			return "", fmt.Errorf("%w: output %q has invalid module component %q", ErrConfiguration, path, part)
		}
	}
	return strings.Join(parts, string(l.separator())), nil
}

// OutputPath is the inverse of ModuleName.
func (l Layout) OutputPath(module string) (string, error) {
	parts := strings.Split(module, string(l.separator()))
	for _, part := range parts {
		if !IsIdentifier(part) {
			return "", fmt.Errorf("%w: module %q has invalid component %q", ErrConfiguration, module, part)
		}
	}
	return l.Root + strings.Join(parts, "/") + l.Suffix, nil
}

// IsIdentifier reports whether s is a C identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
