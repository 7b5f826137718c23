package sekai

import (
	"reflect"
	"sync"
)

// ComponentID is the dense index assigned to a component type.
type ComponentID uint32

// TypeRegistry assigns every distinct component type a dense ComponentID on first use.
// Ids start at 0, never change and are never reused, so signatures and per-type tables
// can be indexed by them directly. Registration is safe for concurrent use.
type TypeRegistry struct {
	mu    sync.RWMutex
	ids   map[reflect.Type]ComponentID
	types []reflect.Type
}

// defaultTypes backs worlds that are not given a registry of their own.
var defaultTypes = NewTypeRegistry() //nolint:gochecknoglobals // register-once-per-process table

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		ids:   make(map[reflect.Type]ComponentID, 16),
		types: make([]reflect.Type, 0, 16),
	}
}

// DefaultTypeRegistry returns the process-wide registry.
func DefaultTypeRegistry() *TypeRegistry {
	return defaultTypes
}

// ID returns the id of t, registering it when seen for the first time.
func (r *TypeRegistry) ID(t reflect.Type) ComponentID {
	r.mu.RLock()
	id, ok := r.ids[t]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another goroutine may have won the race between the two locks.
	if id, ok := r.ids[t]; ok {
		return id
	}
	id = ComponentID(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	return id
}

// Lookup returns the id of t without registering it.
func (r *TypeRegistry) Lookup(t reflect.Type) (ComponentID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[t]
	return id, ok
}

// Type returns the type registered under id, or nil.
func (r *TypeRegistry) Type(id ComponentID) reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.types) {
		return nil
	}
	return r.types[id]
}

// Len returns the number of registered types.
func (r *TypeRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// ComponentIDOf registers T in r and returns its id.
func ComponentIDOf[T any](r *TypeRegistry) ComponentID {
	return r.ID(reflect.TypeFor[T]())
}

// ID returns the id of T in the registry used by w.
func ID[T any](w *World) ComponentID {
	return w.types.ID(reflect.TypeFor[T]())
}
