package gdx

import (
	"errors"
	"fmt"

	"github.com/structura-labs/go-gdx/pkg/gdxio"
)

// Sentinel errors. Typed errors below wrap these, so callers can match
// broad categories with errors.Is and recover detail with errors.As.
var (
	// ErrNotFound is returned by Open when the file does not exist.
	ErrNotFound = gdxio.ErrNotFound

	// ErrClosed is returned by accessors after Close.
	ErrClosed = errors.New("gdx: file is closed")

	// ErrUnknownSymbol is returned for names never registered, and for
	// symbols dropped after a budget failure.
	ErrUnknownSymbol = errors.New("gdx: unknown symbol")

	// ErrIndexOutOfRange is returned for slot indices past the symbol table.
	ErrIndexOutOfRange = errors.New("gdx: symbol index out of range")

	// ErrUnsupportedKind marks access to a slot excluded at registration
	// (equation symbols).
	ErrUnsupportedKind = errors.New("gdx: unsupported symbol kind")

	// ErrAliasTarget marks an alias of anything but a set. Fatal at open.
	ErrAliasTarget = errors.New("gdx: unsupported alias target")

	// ErrRecordCount marks a slot whose declared record count disagrees
	// with the records streamed. Fatal; the file is untrustworthy.
	ErrRecordCount = errors.New("gdx: record count mismatch")

	// ErrDomainViolation marks a declared domain contradicted by observed
	// data. Fatal; the file is untrustworthy.
	ErrDomainViolation = errors.New("gdx: domain superset violation")

	// ErrBudgetExceeded marks a symbol whose dense form would exceed the
	// element budget. Recoverable: the symbol is dropped, the rest of the
	// file stays usable.
	ErrBudgetExceeded = errors.New("gdx: element budget exceeded")

	// ErrSkipped marks a symbol named in the skip option.
	ErrSkipped = errors.New("gdx: symbol skipped by option")
)

// UnknownSymbolError reports access to a name or slot with no usable
// symbol behind it. Cause carries the original failure when the symbol
// existed but was dropped (budget) or excluded (equation).
type UnknownSymbolError struct {
	Name  string
	Cause error
}

func (e *UnknownSymbolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gdx: unknown symbol %q: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("gdx: unknown symbol %q", e.Name)
}

func (e *UnknownSymbolError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrUnknownSymbol, e.Cause}
	}
	return []error{ErrUnknownSymbol}
}

// IndexError reports a slot index outside the symbol table.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("gdx: symbol index %d out of range [0,%d]", e.Index, e.Count-1)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// AliasTargetError reports an alias whose target is missing or not a set.
type AliasTargetError struct {
	Alias  string
	Target string
	Kind   gdxio.Kind
	Known  bool
}

func (e *AliasTargetError) Error() string {
	if !e.Known {
		return fmt.Sprintf("gdx: alias %q targets unknown symbol %q", e.Alias, e.Target)
	}
	return fmt.Sprintf("gdx: alias %q targets %s %q, want a set", e.Alias, e.Kind, e.Target)
}

func (e *AliasTargetError) Unwrap() error { return ErrAliasTarget }

// RecordCountError reports a slot that declared one record count and
// delivered another.
type RecordCountError struct {
	Symbol   string
	Declared int
	Read     int
}

func (e *RecordCountError) Error() string {
	return fmt.Sprintf("gdx: symbol %q declares %d records, read %d", e.Symbol, e.Declared, e.Read)
}

func (e *RecordCountError) Unwrap() error { return ErrRecordCount }

// DomainViolationError reports a declared domain contradicted by the data,
// or a declared domain reference that cannot serve as an axis. Label is
// empty for reference problems.
type DomainViolationError struct {
	Symbol string
	Dim    int
	Domain string
	Label  string
	Reason string
}

func (e *DomainViolationError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("gdx: domain of %s dimension %d: %q %s", e.Symbol, e.Dim, e.Domain, e.Reason)
	}
	return fmt.Sprintf("gdx: domain of %s dimension %d: element %q not in declared domain %q", e.Symbol, e.Dim, e.Label, e.Domain)
}

func (e *DomainViolationError) Unwrap() error { return ErrDomainViolation }

// BudgetError reports the dense size a symbol would have needed against
// the configured ceiling.
type BudgetError struct {
	Symbol   string
	Elements int64
	Budget   int64
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("gdx: symbol %q needs %d dense elements, budget is %d", e.Symbol, e.Elements, e.Budget)
}

func (e *BudgetError) Unwrap() error { return ErrBudgetExceeded }
