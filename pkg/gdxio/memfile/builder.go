package memfile

import (
	"github.com/structura-labs/go-gdx/pkg/gdxio"
)

// Rec is one sparse record handed to the Builder. Value is the level field;
// the remaining fields matter only for variables.
type Rec struct {
	Keys     []string
	Value    float64
	Marginal float64
	Lower    float64
	Upper    float64
	Scale    float64
}

// Builder assembles an in-memory GDX file. Symbols occupy slots in the
// order they are added, starting at slot 1; slot 0 (the universal set "*")
// is synthesized from all element labels in first-appearance order when
// Reader is called.
//
// The builder trusts its caller: it performs no cross-symbol validation, so
// tests can construct inconsistent files (bad alias targets, wrong declared
// record counts) to exercise error paths.
type Builder struct {
	version  string
	producer string
	symbols  []symbol
	byName   map[string]int
	texts    []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		version:  "GDX Library (memfile)",
		producer: "go-gdx",
		byName:   make(map[string]int),
		texts:    []string{""},
	}
}

// SetMeta overrides the file version and producer strings.
func (b *Builder) SetMeta(version, producer string) {
	b.version = version
	b.producer = producer
}

func (b *Builder) add(sym symbol) {
	b.byName[sym.meta.Name] = len(b.symbols)
	b.symbols = append(b.symbols, sym)
}

// AddSet adds a one-dimensional set with the given elements.
func (b *Builder) AddSet(name string, domain []string, desc string, elements ...string) {
	recs := make([]gdxio.Record, len(elements))
	for i, e := range elements {
		recs[i] = gdxio.Record{Keys: []string{e}}
	}
	b.add(symbol{
		meta: gdxio.SymbolMeta{
			Name:        name,
			Dim:         1,
			Kind:        gdxio.KindSet,
			Records:     len(recs),
			Description: desc,
		},
		domain:  domain,
		records: recs,
	})
}

// AddSetTuples adds a multi-dimensional set whose members are the given
// key tuples.
func (b *Builder) AddSetTuples(name string, domain []string, desc string, tuples ...[]string) {
	dim := len(domain)
	if dim == 0 && len(tuples) > 0 {
		dim = len(tuples[0])
	}
	recs := make([]gdxio.Record, len(tuples))
	for i, tup := range tuples {
		recs[i] = gdxio.Record{Keys: tup}
	}
	b.add(symbol{
		meta: gdxio.SymbolMeta{
			Name:        name,
			Dim:         dim,
			Kind:        gdxio.KindSet,
			Records:     len(recs),
			Description: desc,
		},
		domain:  domain,
		records: recs,
	})
}

// SetText attaches explanatory text to one element of a previously added
// set. The text is stored in the file-level text table and referenced from
// the element's record, the way GDX associates set texts.
func (b *Builder) SetText(set, element, text string) {
	idx, ok := b.byName[set]
	if !ok {
		return
	}
	sym := &b.symbols[idx]
	for i := range sym.records {
		if len(sym.records[i].Keys) == 1 && sym.records[i].Keys[0] == element {
			b.texts = append(b.texts, text)
			sym.records[i].Values[gdxio.ValLevel] = float64(len(b.texts) - 1)
			return
		}
	}
}

// AddParameter adds a parameter with the given sparse records.
func (b *Builder) AddParameter(name string, domain []string, desc string, recs ...Rec) {
	b.addValued(name, domain, desc, gdxio.KindParameter, gdxio.VarUnknown, recs)
}

// AddVariable adds a variable of the given type with the given records.
func (b *Builder) AddVariable(name string, domain []string, desc string, vt gdxio.VarType, recs ...Rec) {
	b.addValued(name, domain, desc, gdxio.KindVariable, vt, recs)
}

func (b *Builder) addValued(name string, domain []string, desc string, kind gdxio.Kind, vt gdxio.VarType, recs []Rec) {
	dim := len(domain)
	if dim == 0 && len(recs) > 0 {
		dim = len(recs[0].Keys)
	}
	records := make([]gdxio.Record, len(recs))
	for i, rec := range recs {
		records[i] = gdxio.Record{
			Keys: rec.Keys,
			Values: [gdxio.ValCount]float64{
				gdxio.ValLevel:    rec.Value,
				gdxio.ValMarginal: rec.Marginal,
				gdxio.ValLower:    rec.Lower,
				gdxio.ValUpper:    rec.Upper,
				gdxio.ValScale:    rec.Scale,
			},
		}
	}
	b.add(symbol{
		meta: gdxio.SymbolMeta{
			Name:        name,
			Dim:         dim,
			Kind:        kind,
			Records:     len(records),
			VarType:     vt,
			Description: desc,
		},
		domain:  domain,
		records: records,
	})
}

// AddScalar adds a zero-dimensional parameter holding a single value.
func (b *Builder) AddScalar(name, desc string, value float64) {
	b.add(symbol{
		meta: gdxio.SymbolMeta{
			Name:        name,
			Dim:         0,
			Kind:        gdxio.KindParameter,
			Records:     1,
			Description: desc,
		},
		records: []gdxio.Record{{Values: [gdxio.ValCount]float64{gdxio.ValLevel: value}}},
	})
}

// AddAlias adds an alias slot for target. GDX records the linkage in the
// description line, which is how readers recover it.
func (b *Builder) AddAlias(name, target string) {
	dim := 1
	if idx, ok := b.byName[target]; ok {
		dim = b.symbols[idx].meta.Dim
	}
	b.add(symbol{
		meta: gdxio.SymbolMeta{
			Name:        name,
			Dim:         dim,
			Kind:        gdxio.KindAlias,
			Description: "Aliased with " + target,
		},
	})
}

// AddEquation adds an equation slot. Equations are carried for slot-layout
// fidelity; the materialization layer refuses them.
func (b *Builder) AddEquation(name string, domain []string, desc string) {
	b.add(symbol{
		meta: gdxio.SymbolMeta{
			Name:        name,
			Dim:         len(domain),
			Kind:        gdxio.KindEquation,
			Description: desc,
		},
		domain: domain,
	})
}

// DeclareRecords overrides the record count a symbol's metadata declares,
// without touching its actual records. Readers are expected to notice the
// mismatch, so this exists to test that they do.
func (b *Builder) DeclareRecords(name string, n int) {
	if idx, ok := b.byName[name]; ok {
		b.symbols[idx].meta.Records = n
	}
}

// Reader snapshots the builder into a gdxio.Reader. Slot 0 is the
// synthesized universal set. The builder can keep being used afterwards;
// the snapshot does not change.
func (b *Builder) Reader() gdxio.Reader {
	labels := make([]string, 0, 16)
	seen := make(map[string]bool)
	for _, sym := range b.symbols {
		for _, rec := range sym.records {
			for _, key := range rec.Keys {
				if !seen[key] {
					seen[key] = true
					labels = append(labels, key)
				}
			}
		}
	}

	universe := symbol{
		meta: gdxio.SymbolMeta{
			Name:        "*",
			Dim:         1,
			Kind:        gdxio.KindSet,
			Records:     len(labels),
			Description: "universal set",
		},
	}
	for _, l := range labels {
		universe.records = append(universe.records, gdxio.Record{Keys: []string{l}})
	}

	symbols := make([]symbol, 0, len(b.symbols)+1)
	symbols = append(symbols, universe)
	for _, sym := range b.symbols {
		cp := sym
		cp.records = make([]gdxio.Record, len(sym.records))
		copy(cp.records, sym.records)
		symbols = append(symbols, cp)
	}

	texts := make([]string, len(b.texts))
	copy(texts, b.texts)

	return &reader{
		meta: gdxio.FileMeta{
			Version:      b.version,
			Producer:     b.producer,
			SymbolCount:  len(b.symbols),
			ElementCount: len(labels),
		},
		symbols: symbols,
		texts:   texts,
		cur:     -1,
	}
}
