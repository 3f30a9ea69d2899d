package bot

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateModule is returned when a module name is registered twice.
var ErrDuplicateModule = errors.New("module already registered")

// ErrUnknownModule is returned when a selected module was never registered.
var ErrUnknownModule = errors.New("module not registered")

// Registry holds registered modules keyed by name, in registration order.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Module
	order  []string
}

// NewRegistry creates a new module registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Module),
	}
}

// Register adds a module to the registry.
// Names are unique; a second module with the same name is rejected.
func (r *Registry) Register(m Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := m.Name()
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateModule, name)
	}
	r.byName[name] = m
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byName[name]
	return m, ok
}

// Modules returns a snapshot of all registered modules in registration order.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Module, len(r.order))
	for i, name := range r.order {
		result[i] = r.byName[name]
	}
	return result
}

// Select returns the named modules in registration order.
// An empty selection returns every module.
func (r *Registry) Select(names []string) ([]Module, error) {
	if len(names) == 0 {
		return r.Modules(), nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := r.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
		}
		wanted[name] = true
	}

	var selected []Module
	for _, m := range r.Modules() {
		if wanted[m.Name()] {
			selected = append(selected, m)
		}
	}
	return selected, nil
}

// Global registry instance for module self-registration via init()
var globalRegistry = NewRegistry()

// Register adds a module to the global registry.
// This is typically called from module init() functions, so a duplicate
// name is a programming error and panics.
func Register(m Module) {
	if err := globalRegistry.Register(m); err != nil {
		panic(err)
	}
}

// Modules returns all modules from the global registry.
func Modules() []Module {
	return globalRegistry.Modules()
}

// ResetGlobalRegistry resets the global registry.
// This is intended for testing purposes only.
func ResetGlobalRegistry() {
	globalRegistry = NewRegistry()
}
