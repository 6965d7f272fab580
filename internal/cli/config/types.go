// Package config loads gdxdump configuration from defaults, a YAML config
// file, GDXDUMP_-prefixed environment variables, and command-line flags,
// in rising order of precedence.
package config

import "github.com/structura-labs/go-gdx/pkg/gdx"

// Config holds all CLI configuration options.
type Config struct {
	// Output selects the rendering mode: auto, text, markdown, or json.
	Output  string `koanf:"output"`
	Verbose bool   `koanf:"verbose"`

	// Eager materializes every symbol at open instead of on first access.
	Eager bool `koanf:"eager"`

	// NoImplicit disables implicit set synthesis for wildcard dimensions.
	NoImplicit bool `koanf:"no_implicit"`

	// Skip names symbols that must never materialize. The env form
	// GDXDUMP_SKIP accepts a comma-separated list.
	Skip []string `koanf:"skip"`

	// MaxElements bounds the dense element count per symbol; negative
	// disables the bound.
	MaxElements int64 `koanf:"max_elements"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // auto-detect: TTY=text, non-TTY=markdown
	DefaultMaxElements = gdx.DefaultMaxElements
)

// FileOptions translates the configuration into gdx open options.
func (c *Config) FileOptions() []gdx.Option {
	var opts []gdx.Option
	if c.Eager {
		opts = append(opts, gdx.WithEagerLoad())
	}
	if c.NoImplicit {
		opts = append(opts, gdx.WithoutImplicitSets())
	}
	if len(c.Skip) > 0 {
		opts = append(opts, gdx.WithSkip(c.Skip...))
	}
	if c.MaxElements != DefaultMaxElements {
		opts = append(opts, gdx.WithMaxDenseElements(c.MaxElements))
	}
	return opts
}
