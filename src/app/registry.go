package app

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ErrComponentNotFound is returned when a root component definition can not be resolved
var ErrComponentNotFound = errors.New("root component not found")

// Factory builds a component definition
type Factory func() Component

// Registry maps names to root component definitions
type Registry struct {
	sync.RWMutex
	factories map[string]Factory
}

// NewRegistry is the Registry constructor
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Import makes a component resolvable under name, replacing any previous definition
func (Registry *Registry) Import(name string, factory Factory) {
	Registry.Lock()
	Registry.factories[name] = factory
	Registry.Unlock()
}

// Resolve returns the component definition registered under name
func (Registry *Registry) Resolve(name string) (Component, error) {
	Registry.RLock()
	factory, ok := Registry.factories[name]
	Registry.RUnlock()
	if !ok || factory == nil {
		return nil, errors.Wrapf(ErrComponentNotFound, "%q", name)
	}
	c := factory()
	if c == nil {
		return nil, errors.Wrapf(ErrComponentNotFound, "%q has a nil definition", name)
	}
	return c, nil
}

// Names returns the registered component names, sorted
func (Registry *Registry) Names() []string {
	Registry.RLock()
	defer Registry.RUnlock()
	names := make([]string, 0, len(Registry.factories))
	for name := range Registry.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
