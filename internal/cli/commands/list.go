package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/structura-labs/go-gdx/internal/cli/output"
	"github.com/structura-labs/go-gdx/pkg/gdx"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List all symbols in a GDX file",
		Long: `List every symbol in a GDX file with its slot, kind, dimension,
record count, and domain.

Output adapts to environment:
  - Terminal: styled table
  - Piped/Scripted: markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all symbols (auto-detect output format)
  gdxdump list transport.yaml

  # List symbols as JSON
  gdxdump list transport.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0])
		},
	}
}

func runList(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	f, err := cmdCtx.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listJSON(f, path, r)
	case output.ModeMarkdown:
		return listMarkdown(f, r)
	default:
		return listText(f, r)
	}
}

// nprint groups thousands in record and element counts.
var nprint = message.NewPrinter(language.English)

// listText outputs symbols as a styled table.
func listText(f *gdx.File, r *output.Renderer) error {
	symbols := f.Symbols()
	meta := f.Meta()

	r.Header(1, nprint.Sprintf("Symbols (%d total, %d elements)", len(symbols), meta.ElementCount))

	rows := make([][]string, len(symbols))
	for i, s := range symbols {
		rows[i] = []string{
			fmt.Sprintf("%d", s.Slot),
			s.Name,
			s.Kind.String(),
			fmt.Sprintf("%d", s.Dim),
			nprint.Sprintf("%d", s.Records),
			strings.TrimPrefix(strings.TrimSuffix(domainString(s), ")"), "("),
			s.Description,
		}
	}
	r.Table([]string{"#", "Name", "Kind", "Dim", "Records", "Domain", "Description"}, rows)
	return nil
}

// listMarkdown outputs symbols in markdown format.
func listMarkdown(f *gdx.File, r *output.Renderer) error {
	symbols := f.Symbols()
	meta := f.Meta()

	r.Println(output.FormatHeader(1, nprint.Sprintf("Symbols (%d total, %d elements)", len(symbols), meta.ElementCount)))
	r.Println("")

	for _, s := range symbols {
		r.Println(output.FormatHeader(2, s.Name+domainString(s)))
		r.Println(output.FormatKeyValue("Kind", s.Kind.String()))
		r.Println(output.FormatKeyValue("Records", nprint.Sprintf("%d", s.Records)))
		if s.AliasOf != "" {
			r.Println(output.FormatKeyValue("Alias of", s.AliasOf))
		}
		if s.Description != "" {
			r.Println(output.FormatKeyValue("Description", s.Description))
		}
		r.Println("")
	}
	return nil
}

// listJSON outputs symbols in JSON format.
func listJSON(f *gdx.File, path string, r *output.Renderer) error {
	symbols := f.Symbols()
	meta := f.Meta()

	out := output.ListOutput{
		File: output.FileInfo{
			Path:         path,
			Version:      meta.Version,
			Producer:     meta.Producer,
			SymbolCount:  meta.SymbolCount,
			ElementCount: meta.ElementCount,
		},
		Symbols: make([]output.SymbolInfo, 0, len(symbols)),
	}
	for _, s := range symbols {
		out.Symbols = append(out.Symbols, symbolInfo(s))
	}

	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
