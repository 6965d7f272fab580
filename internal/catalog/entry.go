package catalog

import (
	"math"

	"github.com/structura-labs/go-gdx/pkg/gdxio"
)

// State tracks how far a symbol has progressed through the load pipeline.
type State int

const (
	// StateRegistered means only slot metadata is known.
	StateRegistered State = iota
	// StateDataCached means sparse records have been read and cached.
	StateDataCached
	// StateMaterialized means the dense payload has been built.
	StateMaterialized
	// StateFailed means materialization failed permanently (element budget);
	// the symbol stays in the arena but refuses further access.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRegistered:
		return "registered"
	case StateDataCached:
		return "cached"
	case StateMaterialized:
		return "materialized"
	case StateFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// DepthUnknown marks a set whose hierarchy depth could not be computed.
// It compares greater than every real depth, so such sets lose all
// candidate tie-breaks but remain usable as a last resort.
const DepthUnknown = math.MaxInt

// UniversalIndex is the arena index of the universal set "*", which always
// occupies file slot 0.
const UniversalIndex = 0

// Entry is one symbol in the flat arena. Domain axes reference other
// entries by arena index, never by pointer, so reachability walks cannot
// chase stale references.
type Entry struct {
	Index       int // arena index
	Slot        int // file slot; -1 for synthesized entries
	Name        string
	Kind        gdxio.Kind
	VarType     gdxio.VarType
	Dim         int
	Records     int // record count declared by the file
	Description string

	// Declared holds the per-dimension domain names the file records,
	// "*" marking wildcards. nil means the file carries none, which
	// readers treat as all-wildcard.
	Declared []string

	// AliasFor is the arena index of the alias target, -1 otherwise.
	AliasFor int

	// Implicit marks a per-(symbol, dimension) synthesized set. Implicit
	// sets never participate in wildcard candidate searches and stay out
	// of symbol listings.
	Implicit bool

	State State
	Data  *Records

	// Domain holds resolved per-dimension axis arena indices once the
	// resolver has run; nil until then. Inferred records whether any
	// resolved axis differs from what the file declared.
	Domain   []int
	Inferred bool
	Depth    int

	// LoadErr pins the failure that moved the entry to StateFailed.
	LoadErr error
}

// IsSet reports whether the entry is a set (the universal set included).
func (e *Entry) IsSet() bool { return e.Kind == gdxio.KindSet }

// IsAlias reports whether the entry is an alias slot.
func (e *Entry) IsAlias() bool { return e.Kind == gdxio.KindAlias }

// Resolved reports whether the domain resolver has assigned axes.
func (e *Entry) Resolved() bool { return e.Domain != nil }

// Records is a symbol's cached sparse data: parallel key/value slices in
// file record order plus per-dimension element lists in first-seen order.
// For sets the value is the associated-text index; for parameters and
// variables it is the level field.
type Records struct {
	Keys     [][]string
	Values   []float64
	Elements [][]string

	sets []map[string]struct{}
}

// newRecords prepares an empty cache for a symbol of the given dimension.
func newRecords(dim int) *Records {
	return &Records{Elements: make([][]string, dim)}
}

// add appends one record, extending per-dimension element lists with any
// labels seen for the first time.
func (r *Records) add(keys []string, value float64, seen []map[string]struct{}) {
	r.Keys = append(r.Keys, keys)
	r.Values = append(r.Values, value)
	for d, k := range keys {
		if _, ok := seen[d][k]; !ok {
			seen[d][k] = struct{}{}
			r.Elements[d] = append(r.Elements[d], k)
		}
	}
}

// Len returns the number of cached records.
func (r *Records) Len() int { return len(r.Keys) }

// ElementSet returns a membership set over the dimension's elements,
// built once and memoized.
func (r *Records) ElementSet(dim int) map[string]struct{} {
	if r.sets == nil {
		r.sets = make([]map[string]struct{}, len(r.Elements))
	}
	if r.sets[dim] == nil {
		s := make(map[string]struct{}, len(r.Elements[dim]))
		for _, e := range r.Elements[dim] {
			s[e] = struct{}{}
		}
		r.sets[dim] = s
	}
	return r.sets[dim]
}
