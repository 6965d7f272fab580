package gdx

import (
	"github.com/structura-labs/go-gdx/internal/catalog"
	"github.com/structura-labs/go-gdx/internal/domain"
	"github.com/structura-labs/go-gdx/pkg/dense"
	"github.com/structura-labs/go-gdx/pkg/gdxio"
)

// Symbol is the facade view of one catalog entry: identity and domain
// metadata plus, once the symbol is materialized, its dense payload.
// Views are cheap to build; the payload is shared with the file, and an
// alias shares its target's payload.
type Symbol struct {
	Name        string
	Description string
	Kind        gdxio.Kind
	VarType     gdxio.VarType
	Dim         int
	Records     int

	// Slot is the symbol's file position; 0 is the universal set.
	Slot int

	// Declared holds the domain names as the file wrote them, one per
	// dimension, "*" marking wildcards.
	Declared []string

	// Domain holds the resolved axis set names, nil until the symbol is
	// materialized. Inferred reports whether any axis differs from the
	// declaration.
	Domain   []string
	Inferred bool

	// AliasOf names the backing set when this symbol is an alias.
	AliasOf string

	// Data is nil until the symbol is materialized.
	Data Data
}

// Data is a materialized payload: one of SetData, ScalarData or
// ParameterData.
type Data interface{ isData() }

// SetData is the payload of a set. One-dimensional sets carry Elements in
// file record order with parallel associated Texts ("" where the file
// records none). Multi-dimensional sets carry a dense membership array
// instead, with Elements and Texts nil.
type SetData struct {
	Elements []string
	Texts    []string
	Members  *dense.Bool
}

func (*SetData) isData() {}

// ScalarData is the payload of a dimension-0 parameter. Value is NaN when
// the file holds no record for it.
type ScalarData struct {
	Value float64
}

func (*ScalarData) isData() {}

// ParameterData is the payload of a parameter or variable: level values
// over the resolved axes, NaN where no record exists.
type ParameterData struct {
	Values *dense.Float64
}

func (*ParameterData) isData() {}

// view builds the facade view of an entry. An alias shows its own name
// and description over the target's shape and payload.
func (f *File) view(e *catalog.Entry) *Symbol {
	t := f.cat.Dealias(e)
	s := &Symbol{
		Name:        e.Name,
		Description: e.Description,
		Kind:        e.Kind,
		Slot:        e.Slot,
		VarType:     t.VarType,
		Dim:         t.Dim,
		Records:     t.Records,
		Declared:    declaredNames(t),
		Inferred:    t.Inferred,
		Data:        f.data[t.Index],
	}
	if t != e {
		s.AliasOf = t.Name
	}
	if t.Resolved() {
		s.Domain = make([]string, len(t.Domain))
		for i, ai := range t.Domain {
			s.Domain[i] = f.cat.Entry(ai).Name
		}
	}
	return s
}

// declaredNames normalizes a declaration to one name per dimension, all
// wildcard when the file carries none.
func declaredNames(e *catalog.Entry) []string {
	out := make([]string, e.Dim)
	for i := range out {
		if i < len(e.Declared) {
			out[i] = e.Declared[i]
		} else {
			out[i] = domain.Wildcard
		}
	}
	return out
}
