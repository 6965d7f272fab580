// Package memfile provides an in-memory gdxio.Reader built programmatically
// through a Builder. It is the reference decoder for tests and for callers
// that assemble GDX-shaped data in code rather than reading it from disk.
package memfile

import (
	"fmt"
	"io"

	"github.com/structura-labs/go-gdx/pkg/gdxio"
)

type symbol struct {
	meta    gdxio.SymbolMeta
	domain  []string // nil = no recorded domain
	records []gdxio.Record
}

// reader is an immutable snapshot produced by Builder.Reader.
type reader struct {
	meta    gdxio.FileMeta
	symbols []symbol
	texts   []string // associated set texts, index 0 unused
	cur     int      // slot being streamed, -1 when idle
	pos     int
}

var _ gdxio.Reader = (*reader)(nil)

func (r *reader) Meta() gdxio.FileMeta { return r.meta }

func (r *reader) SymbolMeta(index int) (gdxio.SymbolMeta, error) {
	if index < 0 || index >= len(r.symbols) {
		return gdxio.SymbolMeta{}, fmt.Errorf("symbol index %d out of range [0,%d]", index, len(r.symbols)-1)
	}
	return r.symbols[index].meta, nil
}

func (r *reader) DeclaredDomain(index int) ([]string, error) {
	if index < 0 || index >= len(r.symbols) {
		return nil, fmt.Errorf("symbol index %d out of range [0,%d]", index, len(r.symbols)-1)
	}
	dom := r.symbols[index].domain
	if dom == nil {
		return nil, fmt.Errorf("no domain recorded for symbol %q", r.symbols[index].meta.Name)
	}
	out := make([]string, len(dom))
	copy(out, dom)
	return out, nil
}

func (r *reader) StartRead(index int) (int, error) {
	if index < 0 || index >= len(r.symbols) {
		return 0, fmt.Errorf("symbol index %d out of range [0,%d]", index, len(r.symbols)-1)
	}
	r.cur = index
	r.pos = 0
	return r.symbols[index].meta.Records, nil
}

func (r *reader) NextRecord() (gdxio.Record, error) {
	if r.cur < 0 {
		return gdxio.Record{}, fmt.Errorf("no read in progress")
	}
	recs := r.symbols[r.cur].records
	if r.pos >= len(recs) {
		return gdxio.Record{}, io.EOF
	}
	rec := recs[r.pos]
	r.pos++

	out := gdxio.Record{Values: rec.Values}
	out.Keys = make([]string, len(rec.Keys))
	copy(out.Keys, rec.Keys)
	return out, nil
}

func (r *reader) LabelText(index int) (string, bool) {
	if index <= 0 || index >= len(r.texts) {
		return "", false
	}
	return r.texts[index], true
}

func (r *reader) Close() error {
	r.cur = -1
	return nil
}
