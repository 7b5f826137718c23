package sekai

import (
	"reflect"

	"github.com/edwinsyarief/sekai/internal/assert"
)

// pool is the type-erased view of a component pool, used where the world only knows
// component ids: stripping a destroyed entity, search environments, JSON views.
type pool interface {
	componentID() ComponentID
	typ() reflect.Type
	name() string
	has(id uint32) bool
	remove(id uint32) bool
	len() int
	getAny(id uint32) (any, bool)
	clear()
}

// componentPool stores the values of one component type keyed by entity id.
type componentPool[T any] struct {
	data  sparseSet[T]
	t     reflect.Type
	id    ComponentID
	empty T // handed out by ref for absent ids
}

func newComponentPool[T any](id ComponentID, capacity int) *componentPool[T] {
	return &componentPool[T]{
		data: newSparseSet[T](capacity),
		t:    reflect.TypeFor[T](),
		id:   id,
	}
}

// ref returns a pointer to the value stored for entity id. An absent id yields the
// pool's zeroed empty value, so callers must check the signature to know presence.
func (p *componentPool[T]) ref(id uint32) *T {
	if ptr := p.data.ptr(id); ptr != nil {
		return ptr
	}
	var zero T
	p.empty = zero
	return &p.empty
}

func (p *componentPool[T]) componentID() ComponentID { return p.id }
func (p *componentPool[T]) typ() reflect.Type        { return p.t }
func (p *componentPool[T]) has(id uint32) bool       { return p.data.has(id) }
func (p *componentPool[T]) len() int                 { return p.data.len() }
func (p *componentPool[T]) clear()                   { p.data.clear() }

func (p *componentPool[T]) name() string {
	if n := p.t.Name(); n != "" {
		return n
	}
	return p.t.String()
}

func (p *componentPool[T]) remove(id uint32) bool {
	ok := p.data.remove(id)
	assert.That(ok, "entity %d has no %s to remove", id, p.t)
	return ok
}

func (p *componentPool[T]) getAny(id uint32) (any, bool) {
	v, ok := p.data.get(id)
	if !ok {
		return nil, false
	}
	return v, true
}

// poolFor returns the pool of T in w, creating it on first use.
func poolFor[T any](w *World, id ComponentID) *componentPool[T] {
	if int(id) >= len(w.pools) {
		grown := make([]pool, max(len(w.pools)*2, int(id)+1))
		copy(grown, w.pools)
		w.pools = grown
	}
	if p := w.pools[id]; p != nil {
		return p.(*componentPool[T]) //nolint:errcheck // ids map to exactly one type
	}
	p := newComponentPool[T](id, w.opts.entityCapacity)
	w.pools[id] = p
	return p
}
