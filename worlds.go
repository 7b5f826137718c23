package sekai

import (
	"slices"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Registry owns a set of named worlds. Its worlds share one TypeRegistry, so a component
// type has the same id in each of them. Create, Get, Destroy and Names are safe for
// concurrent use; the worlds themselves are not.
type Registry struct {
	mu     sync.RWMutex
	worlds map[string]*World
	logger zerolog.Logger
	opts   options
}

// NewRegistry creates an empty registry. The options apply to every world it creates.
// Without WithTypeRegistry the registry numbers types with a registry of its own.
func NewRegistry(opts ...Option) *Registry {
	o := newOptions(append([]Option{WithTypeRegistry(NewTypeRegistry())}, opts...)...)
	return &Registry{
		worlds: make(map[string]*World),
		logger: o.logger,
		opts:   o,
	}
}

// Types returns the type registry shared by the registry's worlds.
func (r *Registry) Types() *TypeRegistry {
	return r.opts.types
}

// Create creates the world called name.
func (r *Registry) Create(name string) (*World, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.worlds[name]; ok {
		return nil, eris.Wrapf(ErrWorldExists, "world %q", name)
	}
	w := newWorld(name, r.opts)
	r.worlds[name] = w
	r.logger.Debug().Str("world", name).Int("worlds", len(r.worlds)).Msg("world registered")
	return w, nil
}

// Get returns the world called name.
func (r *Registry) Get(name string) (*World, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.worlds[name]
	if !ok {
		return nil, eris.Wrapf(ErrWorldNotFound, "world %q", name)
	}
	return w, nil
}

// Destroy destroys the world called name and forgets it. The name can be reused.
func (r *Registry) Destroy(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.worlds[name]
	if !ok {
		return eris.Wrapf(ErrWorldNotFound, "world %q", name)
	}
	delete(r.worlds, name)
	w.Destroy()
	r.logger.Debug().Str("world", name).Int("worlds", len(r.worlds)).Msg("world unregistered")
	return nil
}

// Names returns the names of the registered worlds in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.worlds))
	for name := range r.worlds {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Len returns the number of registered worlds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.worlds)
}
