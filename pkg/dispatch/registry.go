package dispatch

import (
	"fmt"
	"sort"
	"sync"

	"faultline/pkg/errx"
)

// Factory builds a fresh handler for a ref.
type Factory func() (Handler, error)

// Registry maps handler refs to factories. It is safe for concurrent use and
// is normally populated during start-up.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register stores f under ref. Blank refs, nil factories and refs that are
// already registered are rejected.
func (r *Registry) Register(ref string, f Factory) error {
	if isBlank(ref) {
		return errx.Registry("handler ref is required")
	}
	if f == nil {
		return errx.Registry(fmt.Sprintf("factory for handler %q is nil", ref)).WithContext("ref", ref)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[ref]; exists {
		return errx.Registry(fmt.Sprintf("handler %q already registered", ref)).WithContext("ref", ref)
	}
	r.factories[ref] = f
	return nil
}

// MustRegister is like Register but panics on error.
// Intended for init() style registration of built-in handlers.
func (r *Registry) MustRegister(ref string, f Factory) {
	if err := r.Register(ref, f); err != nil {
		panic(err)
	}
}

// Has reports whether ref has a factory.
func (r *Registry) Has(ref string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[ref]
	return ok
}

// Refs returns the registered refs in sorted order.
func (r *Registry) Refs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := make([]string, 0, len(r.factories))
	for ref := range r.factories {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// Resolve builds a handler for ref. Unknown refs, failing factories, factories
// that return a nil handler and factories that panic all yield an error.
func (r *Registry) Resolve(ref string) (h Handler, err error) {
	r.mu.RLock()
	f, ok := r.factories[ref]
	r.mu.RUnlock()
	if !ok {
		return nil, errx.Registry(fmt.Sprintf("handler %q is not registered", ref)).WithContext("ref", ref)
	}

	defer func() {
		if p := recover(); p != nil {
			h = nil
			err = errx.Registry(fmt.Sprintf("factory for handler %q panicked: %v", ref, p)).WithContext("ref", ref)
		}
	}()

	h, err = f()
	if err != nil {
		return nil, errx.WrapRegistry(fmt.Sprintf("handler %q could not be constructed: %v", ref, err), err).WithContext("ref", ref)
	}
	if h == nil {
		return nil, errx.Registry(fmt.Sprintf("factory for handler %q returned no handler", ref)).WithContext("ref", ref)
	}
	return h, nil
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry used by dispatchers built without
// WithRegistry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register stores f under ref in the default registry.
func Register(ref string, f Factory) error {
	return defaultRegistry.Register(ref, f)
}
