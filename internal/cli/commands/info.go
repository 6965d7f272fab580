package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/structura-labs/go-gdx/internal/cli/output"
	"github.com/structura-labs/go-gdx/pkg/gdxio"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file> <symbol>",
		Short: "Show one symbol's metadata and resolved domain",
		Long: `Show a symbol's kind, dimensions, record count, declared domain, and
the domain resolved from the data. Accessing the symbol materializes it,
so the resolved domain reflects inference over the actual records.`,
		Example: `  # Inspect a parameter
  gdxdump info transport.yaml demand

  # Inspect as JSON
  gdxdump info transport.yaml demand --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0], args[1])
		},
	}
}

func runInfo(cmd *cobra.Command, path, name string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	f, err := cmdCtx.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sym, err := f.Get(name)
	if err != nil {
		return err
	}
	summary, err := f.Info(name)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(output.InfoOutput{Symbol: symbolInfo(sym), Summary: summary})
	}

	r.Header(2, sym.Name+domainString(sym))
	r.KeyValue("Slot", sym.Slot)
	r.KeyValue("Kind", sym.Kind.String())
	if sym.Kind == gdxio.KindVariable {
		r.KeyValue("Var type", sym.VarType.String())
	}
	r.KeyValue("Dimensions", sym.Dim)
	r.KeyValue("Records", nprint.Sprintf("%d", sym.Records))
	if sym.Dim > 0 {
		r.KeyValue("Declared", strings.Join(sym.Declared, ","))
		r.KeyValue("Resolved", strings.Join(sym.Domain, ","))
		r.KeyValue("Inferred", sym.Inferred)
	}
	if sym.AliasOf != "" {
		r.KeyValue("Alias of", sym.AliasOf)
	}
	if sym.Description != "" {
		r.KeyValue("Description", sym.Description)
	}
	r.KeyValue("Summary", summary)
	return nil
}
