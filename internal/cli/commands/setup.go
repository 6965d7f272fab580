// Package commands implements the gdxdump subcommands.
package commands

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/structura-labs/go-gdx/internal/cli/config"
	"github.com/structura-labs/go-gdx/internal/cli/output"
	"github.com/structura-labs/go-gdx/pkg/gdx"
)

// CommandContext bundles what every command needs: configuration, logger,
// and renderer.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the context for one command invocation.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.Output)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// OpenFile opens a GDX file with options taken from the configuration.
func (c *CommandContext) OpenFile(path string) (*gdx.File, error) {
	opts := append(c.Cfg.FileOptions(), gdx.WithLogger(c.Logger))
	return gdx.Open(path, opts...)
}

// getConfig returns the current configuration. It uses
// config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults.
	cfg := &config.Config{
		Output:      getEnvOrDefault("GDXDUMP_OUTPUT", config.DefaultOutput),
		Verbose:     os.Getenv("GDXDUMP_VERBOSE") == "true",
		Eager:       os.Getenv("GDXDUMP_EAGER") == "true",
		NoImplicit:  os.Getenv("GDXDUMP_NO_IMPLICIT") == "true",
		MaxElements: config.DefaultMaxElements,
	}
	if v := os.Getenv("GDXDUMP_SKIP"); v != "" {
		cfg.Skip = strings.Split(v, ",")
	}
	if v := os.Getenv("GDXDUMP_MAX_ELEMENTS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxElements = n
		}
	}
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// symbolInfo flattens a facade symbol into the JSON output shape.
func symbolInfo(s *gdx.Symbol) output.SymbolInfo {
	info := output.SymbolInfo{
		Slot:        s.Slot,
		Name:        s.Name,
		Kind:        s.Kind.String(),
		Dim:         s.Dim,
		Records:     s.Records,
		Declared:    s.Declared,
		Domain:      s.Domain,
		Inferred:    s.Inferred,
		AliasOf:     s.AliasOf,
		Description: s.Description,
	}
	if s.VarType != 0 {
		info.VarType = s.VarType.String()
	}
	return info
}

// domainString renders a symbol's domain the way GAMS declarations read:
// the resolved names when known, the declared names otherwise.
func domainString(s *gdx.Symbol) string {
	if s.Dim == 0 {
		return ""
	}
	names := s.Domain
	if names == nil {
		names = s.Declared
	}
	return "(" + strings.Join(names, ",") + ")"
}
