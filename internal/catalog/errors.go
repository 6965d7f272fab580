package catalog

import (
	"errors"
	"fmt"

	"github.com/structura-labs/go-gdx/pkg/gdxio"
)

var (
	// ErrSlotRange indicates a file slot outside 0..SymbolCount.
	ErrSlotRange = errors.New("catalog: slot out of range")

	// ErrSlotExcluded indicates a slot registration skipped over
	// (an equation symbol).
	ErrSlotExcluded = errors.New("catalog: slot excluded")
)

// AliasError reports an alias slot whose target cannot back it: the target
// is missing from the arena or is not a set.
type AliasError struct {
	Alias  string
	Target string
	Kind   gdxio.Kind
	Known  bool
}

func (e *AliasError) Error() string {
	if !e.Known {
		return fmt.Sprintf("catalog: alias %q targets unknown symbol %q", e.Alias, e.Target)
	}
	return fmt.Sprintf("catalog: alias %q targets %s %q, want a set", e.Alias, e.Kind, e.Target)
}

// CountError reports a mismatch between the record count a slot declares
// and the records actually streamed.
type CountError struct {
	Symbol   string
	Declared int
	Read     int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("catalog: symbol %q declares %d records, read %d", e.Symbol, e.Declared, e.Read)
}
