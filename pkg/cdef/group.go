package cdef

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Group is a batch of constants read from one header and written to one file.
type Group struct {
	// Output is the slash-separated path of the generated file, relative to
	// the output directory.
	Output string `yaml:"output" json:"output"`

	// Header is the system header to include, e.g. "fcntl.h".
	Header string `yaml:"header" json:"header"`

	// Names are emitted in this order.
	Names []string `yaml:"names" json:"names"`
}

// Validate checks the header spelling and the constant names.
func (g Group) Validate() error {
	var result *multierror.Error

	switch {
	case g.Header == "":
		result = multierror.Append(result, fmt.Errorf("%w: %s: empty header", ErrConfiguration, g.Output))
	case strings.ContainsAny(g.Header, "<>\"\n\r\t "):
		result = multierror.Append(result, fmt.Errorf("%w: %s: invalid header %q", ErrConfiguration, g.Output, g.Header))
	}

	seen := make(map[string]bool, len(g.Names))
	for _, name := range g.Names {
		if !IsIdentifier(name) {
			result = multierror.Append(result, fmt.Errorf("%w: %s: invalid constant name %q", ErrConfiguration, g.Output, name))
			continue
		}
		if seen[name] {
			result = multierror.Append(result, fmt.Errorf("%w: %s: duplicate constant name %q", ErrConfiguration, g.Output, name))
			continue
		}
		seen[name] = true
	}

	return result.ErrorOrNil()
}

// Unit is a validated group ready to be probed and written.
type Unit struct {
	Group  Group
	Module string
	// Path is the host path of the generated file.
	Path string
}

// Plan validates every group and derives module names and file paths.
// All configuration problems are reported together.
func Plan(layout Layout, dir string, groups []Group) ([]Unit, error) {
	var result *multierror.Error
	if err := layout.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	units := make([]Unit, 0, len(groups))
	owners := make(map[string]int, len(groups))
	for i, g := range groups {
		module, err := layout.ModuleName(g.Output)
		if err != nil {
			result = multierror.Append(result, err)
		}
		if err := g.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
		if prev, ok := owners[g.Output]; ok {
			result = multierror.Append(result, fmt.Errorf("%w: output %q used by groups %d and %d", ErrConfiguration, g.Output, prev, i))
		} else {
			owners[g.Output] = i
		}

		units = append(units, Unit{
			Group:  g,
			Module: module,
			Path:   filepath.Join(dir, filepath.FromSlash(g.Output)),
		})
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return units, nil
}
