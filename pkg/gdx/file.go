// Package gdx reads GAMS Data Exchange (GDX) files into dense,
// domain-aware arrays.
//
// A GDX file is a catalog of symbols (sets, parameters, variables,
// aliases) holding sparse records keyed by string labels. Opening a file
// registers every symbol and eagerly materializes the sets; parameters
// and variables wait for first access unless WithEagerLoad is given.
// Materializing a symbol resolves each of its dimensions to a concrete
// set, honoring declared domains and inferring wildcard ones, and then
// scatters the sparse records into a dense array over the resolved axes.
//
//	f, err := gdx.Open("transport.gdx")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//	sym, err := f.Get("demand")
//
// Binary decoding lives behind the gdxio.Reader contract; this package
// never touches the wire format.
package gdx

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/structura-labs/go-gdx/internal/catalog"
	"github.com/structura-labs/go-gdx/internal/domain"
	"github.com/structura-labs/go-gdx/pkg/dense"
	"github.com/structura-labs/go-gdx/pkg/gdxio"
)

// File is an open GDX file: the symbol catalog plus every payload
// materialized so far. It is not safe for concurrent use.
type File struct {
	log  *slog.Logger
	opts options
	rd   gdxio.Reader
	meta gdxio.FileMeta
	cat  *catalog.Catalog
	res  *domain.Resolver

	axes   map[int]*dense.Axis // set arena index -> shared axis
	data   map[int]Data        // arena index -> payload
	closed bool
}

// Open opens the file at path with a reader picked by file extension.
func Open(path string, opts ...Option) (*File, error) {
	rd, err := gdxio.Open(path)
	if err != nil {
		return nil, err
	}
	f, err := FromReader(rd, opts...)
	if err != nil {
		rd.Close()
		return nil, err
	}
	return f, nil
}

// FromReader loads a file from an already-open reader. The file takes
// ownership of the reader and closes it on Close.
func FromReader(rd gdxio.Reader, opts ...Option) (*File, error) {
	o := newOptions(opts)
	f := &File{
		log:  o.logger,
		opts: o,
		rd:   rd,
		meta: rd.Meta(),
		cat:  catalog.New(rd, o.logger),
		axes: make(map[int]*dense.Axis),
		data: make(map[int]Data),
	}
	f.res = domain.New(f.cat, o.synthesize, o.logger)

	if err := f.cat.RegisterAll(); err != nil {
		return nil, translate(err)
	}

	// The wildcard candidate search scans every known set, so all sets
	// resolve and materialize before any parameter can.
	if err := f.res.ResolveSets(); err != nil {
		return nil, translate(err)
	}
	for _, e := range f.cat.Entries() {
		if !e.IsSet() {
			continue
		}
		if err := f.ensureMaterialized(e); err != nil && !recoverable(err) {
			return nil, err
		}
	}

	if !o.lazy {
		for _, e := range f.cat.Entries() {
			if e.IsSet() || e.IsAlias() {
				continue
			}
			if err := f.ensureMaterialized(e); err != nil && !recoverable(err) {
				return nil, err
			}
		}
	}

	f.log.Debug("gdx file loaded",
		"producer", f.meta.Producer, "symbols", f.meta.SymbolCount, "lazy", o.lazy)
	return f, nil
}

// recoverable reports whether a load failure is local to one symbol.
// Structural failures abort the whole load instead.
func recoverable(err error) bool {
	return errors.Is(err, ErrBudgetExceeded) || errors.Is(err, ErrSkipped)
}

// Close releases the underlying reader. Close is idempotent; any other
// access after it fails with ErrClosed.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.rd.Close()
}

// Meta returns the file header: format version, producer, and symbol and
// element counts.
func (f *File) Meta() gdxio.FileMeta { return f.meta }

// Get returns the named symbol, materializing it on first access.
func (f *File) Get(name string) (*Symbol, error) {
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
	return f.view(e), nil
}

// GetByIndex returns the symbol at a file slot, materializing it on
// first access. Slot 0 is the universal set.
func (f *File) GetByIndex(i int) (*Symbol, error) {
	if f.closed {
		return nil, ErrClosed
	}
	e, err := f.cat.BySlot(i)
	if err != nil {
		return nil, f.slotError(i, err)
	}
	if err := f.ensureMaterialized(e); err != nil {
		return nil, err
	}
	return f.view(e), nil
}

// slotError maps catalog slot failures onto the public taxonomy,
// recovering the excluded symbol's name for the message.
func (f *File) slotError(i int, err error) error {
	if errors.Is(err, catalog.ErrSlotRange) {
		return &IndexError{Index: i, Count: f.cat.SlotCount()}
	}
	if errors.Is(err, catalog.ErrSlotExcluded) {
		name := ""
		if sm, merr := f.rd.SymbolMeta(i); merr == nil {
			name = sm.Name
		}
		return &UnknownSymbolError{Name: name, Cause: ErrUnsupportedKind}
	}
	return err
}

// Dealias resolves name through alias linkage and returns the backing
// symbol under its own name.
func (f *File) Dealias(name string) (*Symbol, error) {
	if f.closed {
		return nil, ErrClosed
	}
	e, ok := f.cat.ByName(name)
	if !ok {
		return nil, &UnknownSymbolError{Name: name}
	}
	t := f.cat.Dealias(e)
	if err := f.ensureMaterialized(t); err != nil {
		return nil, err
	}
	return f.view(t), nil
}

// Symbols lists every usable symbol in file order, the universal set
// first. Listing never materializes; symbols not loaded yet carry nil
// Data.
func (f *File) Symbols() []*Symbol {
	return f.list(func(*catalog.Entry) bool { return true })
}

// Sets lists the universal set, every declared set, and every alias, in
// file order. Listing never materializes; symbols not loaded yet carry
// nil Data.
func (f *File) Sets() []*Symbol {
	return f.list(func(e *catalog.Entry) bool {
		return e.IsSet() || e.IsAlias()
	})
}

// Parameters lists parameters, scalars included, in file order.
func (f *File) Parameters() []*Symbol {
	return f.list(func(e *catalog.Entry) bool {
		return e.Kind == gdxio.KindParameter
	})
}

// Variables lists variables in file order.
func (f *File) Variables() []*Symbol {
	return f.list(func(e *catalog.Entry) bool {
		return e.Kind == gdxio.KindVariable
	})
}

// list filters the arena in registration order. Implicit sets and symbols
// dropped over budget stay out.
func (f *File) list(keep func(*catalog.Entry) bool) []*Symbol {
	if f.closed {
		return nil
	}
	var out []*Symbol
	for _, e := range f.cat.Entries() {
		if e.Implicit || f.cat.Dealias(e).State == catalog.StateFailed {
			continue
		}
		if keep(e) {
			out = append(out, f.view(e))
		}
	}
	return out
}

// Info returns a one-line description of the named symbol. A symbol that
// is still metadata-only reports its declared shape; a materialized one
// reports the resolved shape.
func (f *File) Info(name string) (string, error) {
	if f.closed {
		return "", ErrClosed
	}
	e, ok := f.cat.ByName(name)
	if !ok {
		return "", &UnknownSymbolError{Name: name}
	}
	t := f.cat.Dealias(e)

	data := f.data[t.Index]
	if data == nil {
		head := fmt.Sprintf("%s %s", kindLabel(e, t), e.Name)
		if t.Dim > 0 {
			head += "(" + strings.Join(declaredNames(t), ",") + ")"
		}
		return fmt.Sprintf("%s — %d records: %s", head, t.Records, t.Description), nil
	}

	var shape string
	switch d := data.(type) {
	case *ScalarData:
		return fmt.Sprintf("%s %s = %g — %d records: %s",
			kindLabel(e, t), e.Name, d.Value, t.Records, t.Description), nil
	case *SetData:
		if d.Members == nil {
			shape = fmt.Sprintf("%s: %d", e.Name, len(d.Elements))
		} else {
			shape = axisPairs(d.Members.Axes())
		}
	case *ParameterData:
		shape = axisPairs(d.Values.Axes())
	}
	return fmt.Sprintf("%s %s(%s) — %d records: %s",
		kindLabel(e, t), e.Name, shape, t.Records, t.Description), nil
}

// kindLabel renders the GAMS-style kind name: a dimension-0 parameter is
// a scalar, and parameters and variables carry their vartype prefix.
func kindLabel(e, t *catalog.Entry) string {
	k := e.Kind.String()
	if t.Kind == gdxio.KindParameter && t.Dim == 0 {
		k = "scalar"
	}
	if t.Kind == gdxio.KindParameter || t.Kind == gdxio.KindVariable {
		k = t.VarType.String() + " " + k
	}
	return k
}

func axisPairs(axes []*dense.Axis) string {
	parts := make([]string, len(axes))
	for i, ax := range axes {
		parts[i] = fmt.Sprintf("%s: %d", ax.Name(), ax.Len())
	}
	return strings.Join(parts, ", ")
}
