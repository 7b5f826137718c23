package sekai

import (
	"github.com/edwinsyarief/sekai/internal/assert"
)

// Add attaches a component of type T to e, moving e along one archetype edge.
//
// Adding a component e already has is a programming error: development builds panic and
// release builds overwrite the value. Add reports false for a stale handle.
func Add[T any](e Entity, value T) bool {
	w, ok := e.checked()
	if !ok {
		return false
	}
	id := ID[T](w)
	p := poolFor[T](w, id)
	rec := &w.records[e.ID]
	if rec.arch.sig.Test(id) {
		assert.That(false, "%s already has component %s", e, p.t)
		p.data.set(e.ID, value)
		return true
	}
	w.move(e, rec, w.withComponent(rec.arch, id))
	p.data.set(e.ID, value)
	return true
}

// Set stores value as the T component of e, attaching it first when missing.
// It reports false for a stale handle.
func Set[T any](e Entity, value T) bool {
	w, ok := e.checked()
	if !ok {
		return false
	}
	id := ID[T](w)
	p := poolFor[T](w, id)
	rec := &w.records[e.ID]
	if !rec.arch.sig.Test(id) {
		w.move(e, rec, w.withComponent(rec.arch, id))
	}
	p.data.set(e.ID, value)
	return true
}

// Remove detaches the T component of e. Removing the last component destroys e.
// It reports whether a component was removed.
func Remove[T any](e Entity) bool {
	w, ok := e.checked()
	if !ok {
		return false
	}
	id := ID[T](w)
	rec := &w.records[e.ID]
	if !rec.arch.sig.Test(id) {
		return false
	}
	if rec.arch.sig.Count() == 1 {
		w.destroy(e)
		return true
	}
	w.move(e, rec, w.withoutComponent(rec.arch, id))
	w.pools[id].remove(e.ID)
	return true
}

// Get returns a pointer to the T component of e, or nil when e is stale or lacks T.
//
// The pointer aliases pool storage: it stays valid only until a T component is attached
// to or removed from any entity of the world. Do not keep it across such calls.
func Get[T any](e Entity) *T {
	w := e.world
	if w == nil {
		return nil
	}
	w.mustBeLive()
	if !w.isAlive(e) {
		return nil
	}
	id := ID[T](w)
	if !w.records[e.ID].arch.sig.Test(id) {
		return nil
	}
	return poolFor[T](w, id).data.ptr(e.ID)
}

// Has reports whether e is alive and has a T component.
func Has[T any](e Entity) bool {
	w := e.world
	if w == nil {
		return false
	}
	w.mustBeLive()
	if !w.isAlive(e) {
		return false
	}
	return w.records[e.ID].arch.sig.Test(ID[T](w))
}
