// Package catalog maintains the flat symbol arena for one GDX file: slot
// metadata, name lookup, alias linkage, and cached sparse records. Domain
// resolution and dense materialization happen elsewhere; the catalog only
// holds their results.
package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/structura-labs/go-gdx/pkg/gdxio"
)

// aliasPrefix is how GDX records alias linkage in the description line.
const aliasPrefix = "Aliased with "

// Catalog is the symbol arena for one open file. It is not safe for
// concurrent use; the owning store serializes access.
type Catalog struct {
	log *slog.Logger
	rd  gdxio.Reader

	entries []*Entry
	slots   []int // file slot → arena index, -1 = excluded
	byName  map[string]int
}

// New creates an empty catalog over a reader. A nil logger discards.
func New(rd gdxio.Reader, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Catalog{
		log:    logger,
		rd:     rd,
		byName: make(map[string]int),
	}
}

// RegisterAll walks every file slot (0..SymbolCount), classifies it, and
// registers an arena entry. Equation slots are logged and excluded.
// A broken alias aborts with an AliasError.
func (c *Catalog) RegisterAll() error {
	meta := c.rd.Meta()
	c.slots = make([]int, meta.SymbolCount+1)

	for slot := 0; slot <= meta.SymbolCount; slot++ {
		sm, err := c.rd.SymbolMeta(slot)
		if err != nil {
			return fmt.Errorf("read metadata for slot %d: %w", slot, err)
		}

		if sm.Kind == gdxio.KindEquation {
			c.slots[slot] = -1
			c.log.Warn("skipping unsupported symbol kind", "name", sm.Name, "kind", sm.Kind.String(), "slot", slot)
			continue
		}

		e := &Entry{
			Index:       len(c.entries),
			Slot:        slot,
			Name:        sm.Name,
			Kind:        sm.Kind,
			VarType:     sm.VarType,
			Dim:         sm.Dim,
			Records:     sm.Records,
			Description: sm.Description,
			AliasFor:    -1,
			Depth:       DepthUnknown,
		}

		switch {
		case slot == 0:
			// Universal set: no domain of its own, root of the hierarchy.
			e.Domain = []int{}
			e.Depth = 0

		case sm.Kind == gdxio.KindAlias:
			target, ok := strings.CutPrefix(sm.Description, aliasPrefix)
			if !ok {
				return &AliasError{Alias: sm.Name, Target: sm.Description}
			}
			ti, ok := c.byName[target]
			if !ok {
				return &AliasError{Alias: sm.Name, Target: target}
			}
			te := c.Dealias(c.entries[ti])
			if !te.IsSet() {
				return &AliasError{Alias: sm.Name, Target: target, Kind: te.Kind, Known: true}
			}
			e.AliasFor = te.Index

		default:
			if dom, err := c.rd.DeclaredDomain(slot); err == nil {
				e.Declared = dom
			}
		}

		c.slots[slot] = e.Index
		c.entries = append(c.entries, e)
		c.byName[sm.Name] = e.Index
		c.log.Debug("registered symbol", "name", sm.Name, "kind", sm.Kind.String(), "dim", sm.Dim, "records", sm.Records)
	}
	return nil
}

// Len returns the arena size, synthesized entries included.
func (c *Catalog) Len() int { return len(c.entries) }

// SlotCount returns the number of file slots (universal set included).
func (c *Catalog) SlotCount() int { return len(c.slots) }

// Entry returns the arena entry at index i.
func (c *Catalog) Entry(i int) *Entry { return c.entries[i] }

// Entries returns the arena in registration order.
func (c *Catalog) Entries() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// BySlot resolves a file slot to its entry. Excluded slots and slots past
// the table report distinguishable errors.
func (c *Catalog) BySlot(slot int) (*Entry, error) {
	if slot < 0 || slot >= len(c.slots) {
		return nil, fmt.Errorf("%w: %d not in [0,%d]", ErrSlotRange, slot, len(c.slots)-1)
	}
	idx := c.slots[slot]
	if idx < 0 {
		return nil, fmt.Errorf("%w: slot %d holds an equation symbol", ErrSlotExcluded, slot)
	}
	return c.entries[idx], nil
}

// ByName resolves a symbol name to its entry.
func (c *Catalog) ByName(name string) (*Entry, bool) {
	idx, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return c.entries[idx], true
}

// Dealias follows alias linkage to the backing entry. Non-aliases come
// back unchanged.
func (c *Catalog) Dealias(e *Entry) *Entry {
	for e.AliasFor >= 0 {
		e = c.entries[e.AliasFor]
	}
	return e
}

// CacheData streams a symbol's sparse records into the arena, recording
// per-dimension elements in first-seen order. It is idempotent. A record
// count differing from what the slot declares aborts with a CountError.
func (c *Catalog) CacheData(e *Entry) error {
	if e.Data != nil {
		return nil
	}

	declared, err := c.rd.StartRead(e.Slot)
	if err != nil {
		return fmt.Errorf("start read of %q: %w", e.Name, err)
	}

	recs := newRecords(e.Dim)
	seen := make([]map[string]struct{}, e.Dim)
	for d := range seen {
		seen[d] = make(map[string]struct{})
	}

	for {
		rec, err := c.rd.NextRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read records of %q: %w", e.Name, err)
		}
		keys := make([]string, len(rec.Keys))
		copy(keys, rec.Keys)
		recs.add(keys, rec.Values[gdxio.ValLevel], seen)
	}

	if recs.Len() != declared {
		return &CountError{Symbol: e.Name, Declared: declared, Read: recs.Len()}
	}

	e.Data = recs
	if e.State == StateRegistered {
		e.State = StateDataCached
	}
	c.log.Debug("cached symbol data", "name", e.Name, "records", recs.Len())
	return nil
}

// AddImplicit registers a synthesized one-dimensional set carrying the
// labels a symbol observed on one of its wildcard dimensions. The name is
// derived from the owner and dimension; GAMS identifiers cannot start with
// an underscore, so synthesized names cannot collide with file symbols.
func (c *Catalog) AddImplicit(owner *Entry, dim int, labels []string) *Entry {
	name := fmt.Sprintf("_%s_%d", owner.Name, dim)
	if idx, ok := c.byName[name]; ok {
		return c.entries[idx]
	}

	recs := newRecords(1)
	seen := []map[string]struct{}{make(map[string]struct{}, len(labels))}
	for _, l := range labels {
		recs.add([]string{l}, 0, seen)
	}

	e := &Entry{
		Index:       len(c.entries),
		Slot:        -1,
		Name:        name,
		Kind:        gdxio.KindSet,
		Dim:         1,
		Records:     recs.Len(),
		Description: fmt.Sprintf("implicit domain of %s dimension %d", owner.Name, dim),
		AliasFor:    -1,
		Implicit:    true,
		State:       StateDataCached,
		Data:        recs,
		Domain:      []int{UniversalIndex},
		Depth:       1,
	}
	c.entries = append(c.entries, e)
	c.byName[name] = e.Index
	c.log.Debug("synthesized implicit set", "name", name, "owner", owner.Name, "dim", dim, "elements", recs.Len())
	return e
}
