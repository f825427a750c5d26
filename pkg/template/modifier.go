package template

import (
	"sync"

	"golang.org/x/text/language"
)

// Modifier transforms a resolved variable value before it is written.
// argument is the text after "=" in the marker, or "" when none was given.
// Returning an error aborts the render; modifiers never recover internally.
type Modifier func(value any, argument string, locale language.Tag) (any, error)

// Registry maps modifier names to implementations. It is safe for concurrent
// reads, so a single registry can back engines rendering in parallel;
// register any custom modifiers before rendering begins.
type Registry struct {
	mu        sync.RWMutex
	modifiers map[string]Modifier
}

func NewRegistry() *Registry {
	return &Registry{modifiers: make(map[string]Modifier)}
}

// Register adds or replaces a named modifier.
func (r *Registry) Register(name string, modifier Modifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modifiers[name] = modifier
}

func (r *Registry) lookup(name string) (Modifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	modifier, ok := r.modifiers[name]
	return modifier, ok
}

// clone returns an independent copy, used so that per-engine registrations
// do not leak into the shared defaults.
func (r *Registry) clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := NewRegistry()
	for name, modifier := range r.modifiers {
		copied.modifiers[name] = modifier
	}
	return copied
}

// defaultRegistry holds the built-in modifiers shared by all engines.
var defaultRegistry = func() *Registry {
	r := NewRegistry()

	r.Register("format", formatModifier)

	r.Register("url", urlEscapeModifier)
	r.Register("json", jsonEscapeModifier)
	r.Register("csv", csvEscapeModifier)
	r.Register("html", markupEscapeModifier)
	r.Register("xml", markupEscapeModifier)

	r.Register("markdown", markdownModifier)

	r.Register("upper", upperModifier)
	r.Register("lower", lowerModifier)
	r.Register("trim", trimModifier)

	return r
}()

// DefaultModifiers returns a copy of the built-in modifier registry, suitable
// as a starting point for callers that want to add their own transforms.
func DefaultModifiers() *Registry {
	return defaultRegistry.clone()
}
