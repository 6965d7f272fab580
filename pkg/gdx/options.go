package gdx

import (
	"io"
	"log/slog"
)

// DefaultMaxElements is the per-symbol dense element ceiling applied when
// no WithMaxDenseElements option overrides it.
const DefaultMaxElements = 10_000_000

type options struct {
	lazy        bool
	synthesize  bool
	skip        map[string]struct{}
	maxElements int64
	logger      *slog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		lazy:        true,
		synthesize:  true,
		maxElements: DefaultMaxElements,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures how a file is opened and loaded.
type Option func(*options)

// WithEagerLoad materializes every symbol at open instead of on first
// access.
func WithEagerLoad() Option {
	return func(o *options) { o.lazy = false }
}

// WithoutImplicitSets disables implicit set synthesis for the wildcard
// dimensions of parameters and variables. Those dimensions then go
// through the candidate search and, failing that, resolve to the
// universal set.
func WithoutImplicitSets() Option {
	return func(o *options) { o.synthesize = false }
}

// WithSkip names symbols that must never materialize. Skipped symbols
// keep their metadata and stay in listings; access returns ErrSkipped.
func WithSkip(names ...string) Option {
	return func(o *options) {
		if o.skip == nil {
			o.skip = make(map[string]struct{}, len(names))
		}
		for _, n := range names {
			o.skip[n] = struct{}{}
		}
	}
}

// WithMaxDenseElements replaces the per-symbol dense element budget.
// Negative disables the ceiling.
func WithMaxDenseElements(n int64) Option {
	return func(o *options) { o.maxElements = n }
}

// WithLogger routes load diagnostics to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
