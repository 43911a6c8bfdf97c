// Package config loads the YAML configuration of the mdrender CLI.
package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

const (
	MaxVariantNameLength = 64
	MaxStyleNameLength   = 64
	MaxURLLength         = 2048
	MaxPathLength        = 4096
)

// AppDir is the directory under os.UserConfigDir searched for configs.
const AppDir = "go-mdrender"

// Config holds the CLI configuration.
type Config struct {
	DefaultVariant string                   `yaml:"defaultVariant"`
	Variants       map[string]VariantConfig `yaml:"variants"`
	Output         OutputConfig             `yaml:"output"`
	Assets         AssetsConfig             `yaml:"assets"`
}

// VariantConfig overrides renderer settings. Nil fields keep the value of
// the built-in variant of the same name, or the zero value for new ones.
type VariantConfig struct {
	CopyButton     *bool  `yaml:"copyButton,omitempty"`
	HighlightStyle string `yaml:"highlightStyle,omitempty"`
	AllowHTML      *bool  `yaml:"allowHTML,omitempty"`
	HardWraps      *bool  `yaml:"hardWraps,omitempty"`
	Linkify        *bool  `yaml:"linkify,omitempty"`
	Typographer    *bool  `yaml:"typographer,omitempty"`
	DiagramServer  string `yaml:"diagramServer,omitempty"`
}

// OutputConfig controls where and how HTML is written.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty: next to the source
	Standalone bool   `yaml:"standalone"`
}

// AssetsConfig points at a directory overriding the embedded assets.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"`
}

// DefaultConfig returns the configuration used when no file is given: the
// built-in variants only, output next to the sources.
func DefaultConfig() *Config {
	return &Config{Variants: map[string]VariantConfig{}}
}

// VariantNames returns the configured variant names, sorted.
func (c *Config) VariantNames() []string {
	return slices.Sorted(maps.Keys(c.Variants))
}

// Validate checks field lengths. Variant semantics (known highlight styles,
// URL schemes) are checked when the renderer factory is built.
func (c *Config) Validate() error {
	type field struct {
		name, value string
		max         int
	}
	fields := []field{
		{"defaultVariant", c.DefaultVariant, MaxVariantNameLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, name := range c.VariantNames() {
		if name == "" {
			return errors.New("variants: empty variant name")
		}
		v := c.Variants[name]
		prefix := "variants." + name
		fields = append(fields,
			field{prefix, name, MaxVariantNameLength},
			field{prefix + ".highlightStyle", v.HighlightStyle, MaxStyleNameLength},
			field{prefix + ".diagramServer", v.DiagramServer, MaxURLLength},
		)
	}

	for _, f := range fields {
		if err := checkLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	return nil
}

func checkLength(field, value string, limit int) error {
	if len(value) > limit {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, field, len(value), limit)
	}
	return nil
}
