package commands

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/structura-labs/go-gdx/internal/cli/output"
	"github.com/structura-labs/go-gdx/pkg/dense"
	"github.com/structura-labs/go-gdx/pkg/gdx"
)

// NewDumpCommand creates the dump command.
func NewDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file> <symbol>",
		Short: "Dump one symbol's data",
		Long: `Dump a symbol's materialized data: the value of a scalar, the elements
or member tuples of a set, or the sparse records of a parameter or
variable (cells holding a value; NaN fill is omitted).`,
		Example: `  # Dump a parameter's records
  gdxdump dump transport.yaml demand

  # Dump as JSON
  gdxdump dump transport.yaml demand --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], args[1])
		},
	}
}

func runDump(cmd *cobra.Command, path, name string) error {
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

	out := output.DumpOutput{Symbol: symbolInfo(sym)}
	switch d := sym.Data.(type) {
	case *gdx.ScalarData:
		v := d.Value
		out.Value = &v
	case *gdx.SetData:
		if d.Members == nil {
			for i, e := range d.Elements {
				info := output.ElementInfo{Label: e}
				if i < len(d.Texts) {
					info.Text = d.Texts[i]
				}
				out.Elements = append(out.Elements, info)
			}
		} else {
			out.Members = memberTuples(d.Members)
		}
	case *gdx.ParameterData:
		out.Records = sparseRecords(d.Values)
	default:
		return fmt.Errorf("symbol %q has no dumpable data", name)
	}

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return dumpText(r, sym, out)
}

// memberTuples collects the label tuples of every true cell.
func memberTuples(m *dense.Bool) [][]string {
	var tuples [][]string
	eachIndex(m.Shape(), func(idx []int) {
		v, err := m.AtIndex(idx...)
		if err != nil || !v {
			return
		}
		tuples = append(tuples, labelsAt(m.Axes(), idx))
	})
	return tuples
}

// sparseRecords collects every cell holding a value, skipping NaN fill.
func sparseRecords(m *dense.Float64) []output.RecordInfo {
	var recs []output.RecordInfo
	eachIndex(m.Shape(), func(idx []int) {
		v, err := m.AtIndex(idx...)
		if err != nil || math.IsNaN(v) {
			return
		}
		recs = append(recs, output.RecordInfo{Keys: labelsAt(m.Axes(), idx), Value: v})
	})
	return recs
}

func labelsAt(axes []*dense.Axis, idx []int) []string {
	labels := make([]string, len(idx))
	for d, i := range idx {
		labels[d] = axes[d].Labels()[i]
	}
	return labels
}

// eachIndex visits every position of shape in row-major order.
func eachIndex(shape []int, visit func(idx []int)) {
	for _, n := range shape {
		if n == 0 {
			return
		}
	}
	idx := make([]int, len(shape))
	for {
		visit(idx)
		d := len(idx) - 1
		for ; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
		if d < 0 {
			return
		}
	}
}

// dumpText renders a dump in text or markdown mode.
func dumpText(r *output.Renderer, sym *gdx.Symbol, out output.DumpOutput) error {
	r.Header(2, sym.Name+domainString(sym))

	switch {
	case out.Value != nil:
		r.Printf("%s = %g\n", sym.Name, *out.Value)

	case out.Elements != nil:
		rows := make([][]string, len(out.Elements))
		for i, e := range out.Elements {
			rows[i] = []string{e.Label, e.Text}
		}
		r.Table([]string{"Element", "Text"}, rows)

	case out.Members != nil:
		for _, tup := range out.Members {
			r.Println(strings.Join(tup, "."))
		}

	default:
		rows := make([][]string, len(out.Records))
		for i, rec := range out.Records {
			rows[i] = []string{strings.Join(rec.Keys, "."), fmt.Sprintf("%g", rec.Value)}
		}
		r.Table([]string{"Key", "Value"}, rows)
	}
	return nil
}
