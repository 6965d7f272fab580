// Package gdxio defines the record-level contract between GDX file decoders
// and the symbol materialization layer in pkg/gdx.
//
// A GDX file is a sequence of symbol slots. Slot 0 is always the universal
// set "*" holding every unique element label in the file; declared symbols
// occupy slots 1..SymbolCount. A Reader exposes per-slot metadata, declared
// domains, and sequential sparse record streaming. It knows nothing about
// domain inference or dense arrays.
//
// Decoders register themselves by file extension, in the manner of
// database/sql drivers. This module ships two: gdxio/memfile (programmatic,
// in-memory) and gdxio/yamlfile (YAML fixtures, registered for .yaml/.yml).
// A binary .gdx decoder can be provided by an external module through
// Register without any change here.
package gdxio

// Kind identifies the GAMS data type stored in a symbol slot. The numeric
// values follow the GAMS data-exchange API.
type Kind int

const (
	KindSet       Kind = 0
	KindParameter Kind = 1
	KindVariable  Kind = 2
	KindEquation  Kind = 3
	KindAlias     Kind = 4
)

var kindNames = map[Kind]string{
	KindSet:       "set",
	KindParameter: "parameter",
	KindVariable:  "variable",
	KindEquation:  "equation",
	KindAlias:     "alias",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// VarType refines KindVariable symbols. Zero means unknown, which is also
// what non-variable symbols carry.
type VarType int

const (
	VarUnknown  VarType = 0
	VarBinary   VarType = 1
	VarInteger  VarType = 2
	VarPositive VarType = 3
	VarNegative VarType = 4
	VarFree     VarType = 5
	VarSOS1     VarType = 6
	VarSOS2     VarType = 7
	VarSemiCont VarType = 8
	VarSemiInt  VarType = 9
)

var varTypeNames = map[VarType]string{
	VarUnknown:  "unknown",
	VarBinary:   "binary",
	VarInteger:  "integer",
	VarPositive: "positive",
	VarNegative: "negative",
	VarFree:     "free",
	VarSOS1:     "sos1",
	VarSOS2:     "sos2",
	VarSemiCont: "semicont",
	VarSemiInt:  "semiint",
}

func (v VarType) String() string {
	if s, ok := varTypeNames[v]; ok {
		return s
	}
	return "unknown"
}

// Value field indices within a Record. Every record carries all five fields;
// only variables and equations populate more than Level.
const (
	ValLevel    = 0
	ValMarginal = 1
	ValLower    = 2
	ValUpper    = 3
	ValScale    = 4
	ValCount    = 5
)

// FileMeta describes a GDX file as a whole.
//
// SymbolCount excludes the universal set, so valid slot indices are
// 0..SymbolCount inclusive. ElementCount is the number of unique element
// labels across the whole file.
type FileMeta struct {
	Version      string
	Producer     string
	SymbolCount  int
	ElementCount int
}

// SymbolMeta describes one symbol slot.
type SymbolMeta struct {
	Name        string
	Dim         int
	Kind        Kind
	Records     int
	VarType     VarType
	Description string
}

// Record is one sparse data record: a key label per dimension and the five
// numeric value fields.
type Record struct {
	Keys   []string
	Values [ValCount]float64
}

// Reader is the narrow decoding contract consumed by pkg/gdx.
//
// Record streaming is stateful and sequential: StartRead positions the
// reader on a slot and returns the record count the file declares for it,
// then NextRecord yields records until io.EOF. Implementations need not
// tolerate interleaved reads of two slots.
type Reader interface {
	// Meta reports file-level metadata.
	Meta() FileMeta

	// SymbolMeta reports metadata for slot index (0 = universal set).
	SymbolMeta(index int) (SymbolMeta, error)

	// DeclaredDomain reports the per-dimension domain names recorded for
	// slot index, "*" marking wildcard dimensions. An error means the file
	// carries no usable domain for the slot; callers treat every dimension
	// as wildcard.
	DeclaredDomain(index int) ([]string, error)

	// StartRead begins record streaming for slot index and returns the
	// declared record count.
	StartRead(index int) (int, error)

	// NextRecord returns the next record of the slot most recently passed
	// to StartRead, or io.EOF once the slot is exhausted. The record's Keys
	// slice is only valid until the next NextRecord call; callers copy what
	// they keep.
	NextRecord() (Record, error)

	// LabelText resolves a set element's associated explanatory text by
	// its numeric text index. The second return is false when the index
	// has no text.
	LabelText(index int) (string, bool)

	// Close releases underlying resources.
	Close() error
}
