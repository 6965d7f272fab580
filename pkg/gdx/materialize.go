package gdx

import (
	"errors"
	"fmt"
	"math"

	"github.com/structura-labs/go-gdx/internal/catalog"
	"github.com/structura-labs/go-gdx/internal/domain"
	"github.com/structura-labs/go-gdx/pkg/dense"
)

// ensureMaterialized drives one entry through the load pipeline: cache
// sparse records, resolve the domain, build the dense payload. Aliases
// forward to their target. Entries that failed before return their pinned
// error; a budget failure reads as an unknown symbol from the second
// access on.
func (f *File) ensureMaterialized(e *catalog.Entry) error {
	e = f.cat.Dealias(e)

	switch e.State {
	case catalog.StateMaterialized:
		return nil
	case catalog.StateFailed:
		if errors.Is(e.LoadErr, ErrBudgetExceeded) {
			return &UnknownSymbolError{Name: e.Name, Cause: e.LoadErr}
		}
		return e.LoadErr
	}

	if _, ok := f.opts.skip[e.Name]; ok {
		return fmt.Errorf("%w: %q", ErrSkipped, e.Name)
	}

	if err := f.cat.CacheData(e); err != nil {
		err = translate(err)
		e.State = catalog.StateFailed
		e.LoadErr = err
		return err
	}
	if err := f.res.Resolve(e); err != nil {
		err = translate(err)
		e.State = catalog.StateFailed
		e.LoadErr = err
		return err
	}

	data, err := f.build(e)
	if err != nil {
		if errors.Is(err, ErrBudgetExceeded) {
			e.State = catalog.StateFailed
			e.LoadErr = err
			f.log.Warn("symbol dropped, dense form over budget",
				"name", e.Name, "error", err)
		}
		return err
	}

	f.data[e.Index] = data
	e.State = catalog.StateMaterialized
	f.log.Debug("symbol materialized", "name", e.Name, "kind", e.Kind.String(), "dim", e.Dim)
	return nil
}

// build constructs the dense payload for a resolved entry. Scalars keep
// the bare level value, one-dimensional sets keep their ordered elements,
// everything else scatters into a dense array over the shared axes.
func (f *File) build(e *catalog.Entry) (Data, error) {
	switch {
	case e.Dim == 0:
		v := math.NaN()
		if e.Data.Len() > 0 {
			v = e.Data.Values[0]
		}
		return &ScalarData{Value: v}, nil

	case e.IsSet() && e.Dim == 1:
		n := e.Data.Len()
		elems := make([]string, n)
		texts := make([]string, n)
		for i, keys := range e.Data.Keys {
			elems[i] = keys[0]
			texts[i] = f.labelText(e.Data.Values[i])
		}
		return &SetData{Elements: elems, Texts: texts}, nil

	case e.IsSet():
		axes, err := f.axesFor(e)
		if err != nil {
			return nil, err
		}
		arr, err := dense.NewBool(-1, axes...)
		if err != nil {
			return nil, err
		}
		for _, keys := range e.Data.Keys {
			if err := arr.Set(true, keys...); err != nil {
				return nil, fmt.Errorf("place member of %q: %w", e.Name, err)
			}
		}
		return &SetData{Members: arr}, nil

	default:
		axes, err := f.axesFor(e)
		if err != nil {
			return nil, err
		}
		arr, err := dense.NewFloat64(-1, axes...)
		if err != nil {
			return nil, err
		}
		for i, keys := range e.Data.Keys {
			if err := arr.Set(e.Data.Values[i], keys...); err != nil {
				return nil, fmt.Errorf("place record of %q: %w", e.Name, err)
			}
		}
		return &ParameterData{Values: arr}, nil
	}
}

// axesFor assembles the shared axes of a resolved entry and enforces the
// dense element budget before anything is allocated.
func (f *File) axesFor(e *catalog.Entry) ([]*dense.Axis, error) {
	axes := make([]*dense.Axis, len(e.Domain))
	total := int64(1)
	for d, ai := range e.Domain {
		ax, err := f.axis(ai)
		if err != nil {
			return nil, err
		}
		axes[d] = ax
		if n := int64(ax.Len()); total > math.MaxInt64/n {
			total = math.MaxInt64
		} else {
			total *= n
		}
	}
	if f.opts.maxElements >= 0 && total > f.opts.maxElements {
		return nil, &BudgetError{Symbol: e.Name, Elements: total, Budget: f.opts.maxElements}
	}
	return axes, nil
}

// axis returns the shared axis over a set entry's elements, building it
// on first use. Dimensions resolved to the same set share one axis
// object; that is what keeps a symbol declaring the wildcard on several
// dimensions consistent across them. A set with no elements yields a
// single empty-label placeholder so dense shapes never collapse to zero.
func (f *File) axis(ai int) (*dense.Axis, error) {
	if ax, ok := f.axes[ai]; ok {
		return ax, nil
	}
	se := f.cat.Entry(ai)
	if err := f.cat.CacheData(se); err != nil {
		return nil, translate(err)
	}
	labels := se.Data.Elements[0]
	if len(labels) == 0 {
		labels = []string{""}
	}
	ax, err := dense.NewAxis(se.Name, labels)
	if err != nil {
		return nil, err
	}
	f.axes[ai] = ax
	return ax, nil
}

// labelText resolves a set record's associated-text index. Index zero
// means the file recorded no text.
func (f *File) labelText(v float64) string {
	idx := int(v)
	if idx <= 0 {
		return ""
	}
	s, ok := f.rd.LabelText(idx)
	if !ok {
		return ""
	}
	return s
}

// translate rewrites internal load errors into the public taxonomy.
func translate(err error) error {
	var ae *catalog.AliasError
	if errors.As(err, &ae) {
		return &AliasTargetError{Alias: ae.Alias, Target: ae.Target, Kind: ae.Kind, Known: ae.Known}
	}
	var ce *catalog.CountError
	if errors.As(err, &ce) {
		return &RecordCountError{Symbol: ce.Symbol, Declared: ce.Declared, Read: ce.Read}
	}
	var ve *domain.ViolationError
	if errors.As(err, &ve) {
		return &DomainViolationError{Symbol: ve.Symbol, Dim: ve.Dim, Domain: ve.Domain, Label: ve.Label, Reason: ve.Reason}
	}
	return err
}
