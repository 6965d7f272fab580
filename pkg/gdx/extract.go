package gdx

import (
	"fmt"
	"slices"

	"github.com/structura-labs/go-gdx/internal/catalog"
	"github.com/structura-labs/go-gdx/pkg/dense"
)

// Extract returns a deep, self-contained copy of the named symbol's
// payload, materializing it first if needed. Axes that resolved to the
// universal set are filtered of empty-label placeholders, so an extract
// from an otherwise empty file never carries the dummy key.
func (f *File) Extract(name string) (Data, error) {
	if f.closed {
		return nil, ErrClosed
	}
	e, ok := f.cat.ByName(name)
	if !ok {
		return nil, &UnknownSymbolError{Name: name}
	}
	if err := f.ensureMaterialized(e); err != nil {
		return nil, err
	}
	t := f.cat.Dealias(e)

	switch d := f.data[t.Index].(type) {
	case *ScalarData:
		return &ScalarData{Value: d.Value}, nil
	case *SetData:
		if d.Members == nil {
			return &SetData{Elements: slices.Clone(d.Elements), Texts: slices.Clone(d.Texts)}, nil
		}
		m, err := extractBool(t, d.Members)
		if err != nil {
			return nil, err
		}
		return &SetData{Members: m}, nil
	case *ParameterData:
		v, err := extractFloat(t, d.Values)
		if err != nil {
			return nil, err
		}
		return &ParameterData{Values: v}, nil
	default:
		return nil, fmt.Errorf("gdx: unexpected payload %T for %q", d, name)
	}
}

func extractFloat(e *catalog.Entry, src *dense.Float64) (*dense.Float64, error) {
	axes, changed, err := filteredAxes(e, src.Axes())
	if err != nil {
		return nil, err
	}
	if !changed {
		return src.Clone(), nil
	}
	dst, err := dense.NewFloat64(-1, axes...)
	if err != nil {
		return nil, err
	}
	err = eachCell(axes, func(labels []string) error {
		v, err := src.At(labels...)
		if err != nil {
			return err
		}
		return dst.Set(v, labels...)
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

func extractBool(e *catalog.Entry, src *dense.Bool) (*dense.Bool, error) {
	axes, changed, err := filteredAxes(e, src.Axes())
	if err != nil {
		return nil, err
	}
	if !changed {
		return src.Clone(), nil
	}
	dst, err := dense.NewBool(-1, axes...)
	if err != nil {
		return nil, err
	}
	err = eachCell(axes, func(labels []string) error {
		v, err := src.At(labels...)
		if err != nil {
			return err
		}
		return dst.Set(v, labels...)
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// filteredAxes rebuilds payload axes without empty-label placeholders on
// dimensions that resolved to the universal set. Unchanged axes are
// shared with the source.
func filteredAxes(e *catalog.Entry, axes []*dense.Axis) ([]*dense.Axis, bool, error) {
	out := make([]*dense.Axis, len(axes))
	changed := false
	for d, ax := range axes {
		out[d] = ax
		if e.Domain[d] != catalog.UniversalIndex {
			continue
		}
		labels := ax.Labels()
		kept := labels[:0]
		for _, l := range labels {
			if l != "" {
				kept = append(kept, l)
			}
		}
		if len(kept) == len(labels) {
			continue
		}
		na, err := dense.NewAxis(ax.Name(), kept)
		if err != nil {
			return nil, false, err
		}
		out[d] = na
		changed = true
	}
	return out, changed, nil
}

// eachCell visits every coordinate of the axes in row-major order.
func eachCell(axes []*dense.Axis, visit func(labels []string) error) error {
	all := make([][]string, len(axes))
	for i, ax := range axes {
		all[i] = ax.Labels()
		if len(all[i]) == 0 {
			return nil
		}
	}
	idx := make([]int, len(axes))
	labels := make([]string, len(axes))
	for {
		for d := range idx {
			labels[d] = all[d][idx[d]]
		}
		if err := visit(labels); err != nil {
			return err
		}
		d := len(idx) - 1
		for ; d >= 0; d-- {
			idx[d]++
			if idx[d] < len(all[d]) {
				break
			}
			idx[d] = 0
		}
		if d < 0 {
			return nil
		}
	}
}
