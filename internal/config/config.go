// Package config loads whltool settings. Config files come in two
// encodings, TOML and YAML, picked by file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/AppliedIntuition/rules-python/internal/markers"
)

// Config holds the tunable knobs of the tool.
type Config struct {
	// RewriteNamespaces lists directories whose __init__.py is rewritten
	// even when the archive ships one. googleapis-common-protos style
	// empty markers otherwise block sibling distributions from sharing
	// the namespace.
	RewriteNamespaces []string `toml:"rewrite_namespaces" yaml:"rewrite_namespaces"`

	// MarkerMode selects the environment-marker evaluator: "static" uses
	// SatisfiedMarkers as the whole truth, "python" asks PythonBin.
	MarkerMode string `toml:"marker_mode" yaml:"marker_mode"`

	// PythonBin is the interpreter used in "python" marker mode.
	PythonBin string `toml:"python_bin" yaml:"python_bin"`

	// SatisfiedMarkers lists the marker strings treated as satisfied in
	// "static" marker mode.
	SatisfiedMarkers []string `toml:"satisfied_markers" yaml:"satisfied_markers"`
}

// Default returns a Config with the stock settings.
func Default() *Config {
	return &Config{
		RewriteNamespaces: []string{"ruamel"},
		MarkerMode:        "python",
		PythonBin:         "python3",
	}
}

// Load reads a config file by extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	return cfg, nil
}

// RewriteSet returns RewriteNamespaces as a lookup set.
func (c *Config) RewriteSet() map[string]bool {
	set := make(map[string]bool, len(c.RewriteNamespaces))
	for _, n := range c.RewriteNamespaces {
		set[n] = true
	}
	return set
}

// Evaluator builds the environment-marker evaluator the config describes.
func (c *Config) Evaluator() (markers.Evaluator, error) {
	switch c.MarkerMode {
	case "static":
		return markers.NewStatic(c.SatisfiedMarkers), nil
	case "python", "":
		return markers.NewPython(c.PythonBin), nil
	default:
		return nil, fmt.Errorf("unknown marker_mode %q", c.MarkerMode)
	}
}
