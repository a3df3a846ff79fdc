package cdef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Config is the table of groups to generate and their naming convention.
type Config struct {
	// Root and Suffix default to DefaultRoot and DefaultSuffix when unset.
	Root   *string `yaml:"root,omitempty" json:"root,omitempty"`
	Suffix *string `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	Groups []Group `yaml:"groups" json:"groups"`
}

// Layout returns the naming convention of c.
func (c *Config) Layout() Layout {
	l := DefaultLayout()
	if c.Root != nil {
		l.Root = *c.Root
	}
	if c.Suffix != nil {
		l.Suffix = *c.Suffix
	}
	return l
}

// Find returns the group writing output.
func (c *Config) Find(output string) (Group, bool) {
	for _, g := range c.Groups {
		if g.Output == output {
			return g, true
		}
	}
	return Group{}, false
}

// LoadConfig reads a configuration file. Files ending in .json are decoded
// as JSON, everything else as YAML. Unknown fields are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg *Config
	if strings.EqualFold(filepath.Ext(path), ".json") {
		cfg, err = ParseJSON(data)
	} else {
		cfg, err = ParseYAML(data)
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the parts of c that do not depend on any single group.
// Groups themselves are checked by Plan.
func (c *Config) Validate() error {
	var result *multierror.Error
	if len(c.Groups) == 0 {
		result = multierror.Append(result, fmt.Errorf("%w: no groups configured", ErrConfiguration))
	}
	if err := c.Layout().Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// ParseYAML decodes a YAML configuration.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return &cfg, nil
}

// ParseJSON decodes a JSON configuration.
func ParseJSON(data []byte) (*Config, error) {
	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return &cfg, nil
}
