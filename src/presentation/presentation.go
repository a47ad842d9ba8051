// Package presentation holds the global style and script registries of a host document.
//
// A Context is owned by whoever bootstraps the application and is passed in explicitly, so that
// asset registration is a visible, testable call rather than an import side effect.
package presentation

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/will-rowe/appshell/src/assets"
)

// ErrMalformedBundle is returned when a bundle can not be registered
var ErrMalformedBundle = errors.New("malformed bundle")

// Sink receives each bundle the first time it is registered (a host document applying it to its own registries)
type Sink interface {
	ApplyAsset(bundle assets.Bundle) error
}

// Context is the presentation context: the ordered style and script registries
type Context struct {
	sync.RWMutex
	styles  []assets.Bundle
	scripts []assets.Bundle
	byName  map[string]assets.Bundle
	sinks   []Sink
}

// NewContext is the Context constructor
func NewContext() *Context {
	return &Context{
		byName: make(map[string]assets.Bundle),
	}
}

// Attach adds a sink, which will be sent every bundle registered from now on
func (Context *Context) Attach(sink Sink) {
	Context.Lock()
	Context.sinks = append(Context.sinks, sink)
	Context.Unlock()
}

// RegisterAsset adds a bundle to the registry for its kind.
// Registering a name that is already present is a no-op.
func (Context *Context) RegisterAsset(bundle assets.Bundle) error {
	if bundle.Name == "" {
		return errors.Wrap(ErrMalformedBundle, "bundle has no name")
	}
	if len(bundle.Content) == 0 {
		return errors.Wrapf(ErrMalformedBundle, "bundle %q is empty", bundle.Name)
	}
	if bundle.Kind != assets.Style && bundle.Kind != assets.Script {
		return errors.Wrapf(ErrMalformedBundle, "bundle %q has an unknown kind", bundle.Name)
	}
	if !bundle.Inlinable() {
		return errors.Wrapf(ErrMalformedBundle, "bundle %q contains a closing %v tag", bundle.Name, bundle.Kind)
	}

	Context.Lock()
	defer Context.Unlock()
	if _, ok := Context.byName[bundle.Name]; ok {
		return nil
	}
	for _, sink := range Context.sinks {
		if err := sink.ApplyAsset(bundle); err != nil {
			return errors.Wrapf(err, "could not apply bundle %q", bundle.Name)
		}
	}
	Context.byName[bundle.Name] = bundle
	if bundle.Kind == assets.Style {
		Context.styles = append(Context.styles, bundle)
	} else {
		Context.scripts = append(Context.scripts, bundle)
	}
	return nil
}

// Styles returns the registered stylesheets in registration order (last one wins the cascade)
func (Context *Context) Styles() []assets.Bundle {
	Context.RLock()
	defer Context.RUnlock()
	return append([]assets.Bundle(nil), Context.styles...)
}

// Scripts returns the registered behaviour bundles in registration order
func (Context *Context) Scripts() []assets.Bundle {
	Context.RLock()
	defer Context.RUnlock()
	return append([]assets.Bundle(nil), Context.scripts...)
}

// Lookup returns a registered bundle by name
func (Context *Context) Lookup(name string) (assets.Bundle, bool) {
	Context.RLock()
	defer Context.RUnlock()
	b, ok := Context.byName[name]
	return b, ok
}

// Len returns the total number of registered bundles
func (Context *Context) Len() int {
	Context.RLock()
	defer Context.RUnlock()
	return len(Context.byName)
}
