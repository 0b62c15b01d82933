package printer

import (
	"sort"
	"strings"
	"sync"

	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
)

// Registry maps language names and aliases to printers.
type Registry struct {
	mu       sync.RWMutex
	printers map[string]Printer
	aliases  map[string]string
}

// NewRegistry creates a registry holding the given printers.
func NewRegistry(printers ...Printer) *Registry {
	r := &Registry{
		printers: make(map[string]Printer),
		aliases:  make(map[string]string),
	}
	for _, p := range printers {
		r.Register(p)
	}
	return r
}

// Register adds a printer under its language name and any aliases.
func (r *Registry) Register(p Printer, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.printers[p.Language()] = p
	for _, alias := range aliases {
		r.aliases[alias] = p.Language()
	}
}

// Get returns the printer for a language name or alias. Lookup ignores case.
func (r *Registry) Get(language string) (Printer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(strings.TrimSpace(language))
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	if p, ok := r.printers[name]; ok {
		return p, nil
	}
	return nil, exprErrors.NewUnknownLanguage(language, r.languagesLocked())
}

// Languages returns the canonical language names in sorted order.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.languagesLocked()
}

// Aliases returns the aliases registered for a canonical language name.
func (r *Registry) Aliases(language string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []string
	for alias, canonical := range r.aliases {
		if canonical == language {
			result = append(result, alias)
		}
	}
	sort.Strings(result)
	return result
}

func (r *Registry) languagesLocked() []string {
	names := make([]string, 0, len(r.printers))
	for name := range r.printers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPython(), "py", "python3")
	r.Register(NewJavaScript(), "js", "node")
	r.Register(NewPHP())
	r.Register(NewGo(), "golang")
	return r
}

// Default returns the registry holding the built-in printers.
func Default() *Registry {
	return defaultRegistry
}

// Get returns a built-in printer by language name or alias.
func Get(language string) (Printer, error) {
	return defaultRegistry.Get(language)
}

// Languages returns the names of the built-in printers.
func Languages() []string {
	return defaultRegistry.Languages()
}
