package gdxio

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Opener constructs a Reader for a file path.
type Opener func(path string) (Reader, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Opener)
)

// ErrNotFound is wrapped by Openers when the named file does not exist.
var ErrNotFound = errors.New("gdx file not found")

// Register adds a decoder for a file extension (".yaml", ".gdx", ...).
// Called by decoder implementations in their init() functions. Extensions
// are matched case-insensitively; a later Register for the same extension
// replaces the earlier one.
func Register(ext string, opener Opener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[normalizeExt(ext)] = opener
}

// Get retrieves the Opener registered for an extension.
func Get(ext string) (Opener, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	op, ok := registry[normalizeExt(ext)]
	return op, ok
}

// Open dispatches path to the decoder registered for its extension.
func Open(path string) (Reader, error) {
	ext := filepath.Ext(path)
	op, ok := Get(ext)
	if !ok {
		return nil, &UnknownDriverError{
			Ext:       normalizeExt(ext),
			Available: Extensions(),
		}
	}
	return op(path)
}

// Extensions returns all registered extensions (sorted).
func Extensions() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsRegistered checks whether a decoder exists for an extension.
func IsRegistered(ext string) bool {
	_, ok := Get(ext)
	return ok
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// UnknownDriverError is returned by Open when no decoder is registered for
// the file's extension.
type UnknownDriverError struct {
	Ext       string
	Available []string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("no gdx decoder registered for extension %q (registered: %v)", e.Ext, e.Available)
}
