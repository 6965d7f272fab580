// Package domain assigns coordinate axes to symbols: it checks declared
// domains against observed data, infers axes for wildcard dimensions, and
// maintains the set hierarchy depths the inference heuristics rely on.
//
// Axes are arena indices into the symbol catalog, never pointers, so cycle
// checks reduce to index reachability walks and depth computation runs as
// an iterative fixpoint instead of recursion.
package domain

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/structura-labs/go-gdx/internal/catalog"
)

// Wildcard is the domain name marking an unconstrained dimension.
const Wildcard = "*"

// ViolationError reports a declared domain that contradicts the file: a
// dimension references something unusable as a domain, or observed data
// falls outside the declared set. Label is empty for reference problems.
type ViolationError struct {
	Symbol string
	Dim    int
	Domain string
	Label  string
	Reason string
}

func (e *ViolationError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("domain of %s dimension %d: %q %s", e.Symbol, e.Dim, e.Domain, e.Reason)
	}
	return fmt.Sprintf("domain of %s dimension %d: element %q not in declared domain %q", e.Symbol, e.Dim, e.Label, e.Domain)
}

// Resolver computes domain assignments over a catalog arena.
type Resolver struct {
	log        *slog.Logger
	cat        *catalog.Catalog
	synthesize bool
}

// New creates a resolver. synthesize controls implicit-set synthesis for
// wildcard dimensions of parameters and variables. A nil logger discards.
func New(cat *catalog.Catalog, synthesize bool, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{log: logger, cat: cat, synthesize: synthesize}
}

// ResolveSets caches every set's records, resolves set domains in arena
// order, and computes hierarchy depths. It runs once, at open time, before
// any on-demand resolution: wildcard candidate searches scan all known
// sets, so set data has to be complete first. File order does not
// guarantee a set precedes symbols declared over it, which is why data
// caching finishes before any domain is checked.
func (r *Resolver) ResolveSets() error {
	for _, e := range r.cat.Entries() {
		if e.IsSet() {
			if err := r.cat.CacheData(e); err != nil {
				return err
			}
		}
	}

	r.computeDepths()
	for _, e := range r.cat.Entries() {
		if !e.IsSet() || e.Resolved() {
			continue
		}
		if err := r.Resolve(e); err != nil {
			return err
		}
		// Later candidate searches tie-break on depth, so refresh after
		// every assignment.
		r.computeDepths()
	}
	return nil
}

// Resolve assigns axes to one symbol. Data must already be cached. The
// result is cached on the entry; resolving twice is a no-op, and aliases
// resolve through their target on access instead.
func (r *Resolver) Resolve(e *catalog.Entry) error {
	if e.Resolved() || e.IsAlias() {
		return nil
	}
	if e.Dim == 0 {
		e.Domain = []int{}
		return nil
	}

	declared := e.Declared
	if declared == nil {
		declared = make([]string, e.Dim)
		for i := range declared {
			declared[i] = Wildcard
		}
	}

	axes := make([]int, e.Dim)
	for i := 0; i < e.Dim; i++ {
		idx, err := r.resolveDim(e, i, declared[i])
		if err != nil {
			return err
		}
		axes[i] = idx
	}

	e.Domain = axes
	e.Inferred = r.inferred(declared, axes)
	names := make([]string, len(axes))
	for i, ai := range axes {
		names[i] = r.cat.Entry(ai).Name
	}
	r.log.Debug("domain resolved", "name", e.Name, "domain", names, "inferred", e.Inferred)
	return nil
}

func (r *Resolver) resolveDim(e *catalog.Entry, dim int, declared string) (int, error) {
	if declared != Wildcard {
		target, ok := r.cat.ByName(declared)
		if !ok {
			return 0, &ViolationError{Symbol: e.Name, Dim: dim, Domain: declared, Reason: "references an unknown symbol"}
		}
		t := r.cat.Dealias(target)
		if !t.IsSet() || t.Dim != 1 {
			return 0, &ViolationError{Symbol: e.Name, Dim: dim, Domain: declared, Reason: "is not a one-dimensional set"}
		}
		if err := r.cat.CacheData(t); err != nil {
			return 0, err
		}
		members := t.Data.ElementSet(0)
		for _, obs := range e.Data.Elements[dim] {
			if _, ok := members[obs]; !ok {
				return 0, &ViolationError{Symbol: e.Name, Dim: dim, Domain: declared, Label: obs}
			}
		}
		return t.Index, nil
	}

	observed := e.Data.Elements[dim]
	if len(observed) == 0 {
		return catalog.UniversalIndex, nil
	}
	if r.synthesize && !e.IsSet() {
		return r.cat.AddImplicit(e, dim, observed).Index, nil
	}
	return r.candidate(e, dim), nil
}

// candidate searches the known one-dimensional sets for the smallest
// superset of the labels observed on one dimension. Ties prefer lower
// hierarchy depth, then earlier arena registration. Candidates that would
// put the symbol in its own domain chain are skipped; the universal set is
// the fallback and competes like any other candidate.
func (r *Resolver) candidate(e *catalog.Entry, dim int) int {
	observed := e.Data.Elements[dim]
	best := r.cat.Entry(catalog.UniversalIndex)
	bestLen := len(best.Data.Elements[0])

	for _, c := range r.cat.Entries() {
		if !c.IsSet() || c.IsAlias() || c.Implicit || c.Dim != 1 {
			continue
		}
		if c.Index == e.Index || c.Index == catalog.UniversalIndex || c.Data == nil {
			continue
		}
		members := c.Data.ElementSet(0)
		if len(members) < len(observed) {
			continue
		}
		covered := true
		for _, obs := range observed {
			if _, ok := members[obs]; !ok {
				covered = false
				break
			}
		}
		if !covered || r.reaches(c, e.Index) {
			continue
		}

		cLen := len(c.Data.Elements[0])
		if cLen < bestLen || (cLen == bestLen && c.Depth < best.Depth) {
			best = c
			bestLen = cLen
		}
	}

	if best.Index != catalog.UniversalIndex {
		r.log.Debug("wildcard dimension inferred", "name", e.Name, "dim", dim, "set", best.Name)
	}
	return best.Index
}

// reaches walks resolved domain edges from an entry and reports whether
// the target arena index is reachable. Used to keep candidate assignment
// from closing a domain cycle.
func (r *Resolver) reaches(from *catalog.Entry, target int) bool {
	if from.Index == target {
		return true
	}
	seen := make(map[int]bool)
	stack := []int{from.Index}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if i == target {
			return true
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		stack = append(stack, r.cat.Entry(i).Domain...)
	}
	return false
}

// computeDepths runs the depth fixpoint: universal set at 0, every other
// resolved set at 1 + min depth of its axes, retried until no entry makes
// progress. Sets whose chains never ground out stay at DepthUnknown, which
// loses every tie-break but remains usable.
func (r *Resolver) computeDepths() {
	for changed := true; changed; {
		changed = false
		for _, e := range r.cat.Entries() {
			if !e.IsSet() || e.Depth != catalog.DepthUnknown || !e.Resolved() {
				continue
			}
			min := catalog.DepthUnknown
			for _, ai := range e.Domain {
				d := r.cat.Entry(ai).Depth
				if d == catalog.DepthUnknown {
					min = catalog.DepthUnknown
					break
				}
				if d < min {
					min = d
				}
			}
			if min != catalog.DepthUnknown {
				e.Depth = min + 1
				changed = true
			}
		}
	}
}

// inferred reports whether any resolved axis differs from the declared
// domain name for its dimension.
func (r *Resolver) inferred(declared []string, axes []int) bool {
	for i, ai := range axes {
		if r.cat.Entry(ai).Name != declared[i] {
			return true
		}
	}
	return false
}
