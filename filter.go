package sekai

import (
	"iter"

	"github.com/edwinsyarief/sekai/internal/assert"
)

// Filter selects the entities whose signature contains every Include id and none of the
// Exclude ids. It caches the matching archetypes and only scans archetypes created since
// its previous call, so repeated use costs O(new archetypes) to keep current.
//
// Iterating locks every matching archetype: membership changes requested meanwhile are
// recorded and applied once the last iteration over that archetype ends. Nested
// iterations, including from inside a visitor, are allowed. A walk visits each entity at
// most once; an entity restructured during the walk may still be visited under its old
// archetype, where components it lost read as zero values.
//
// Two filters with equal constraints keep separate caches.
type Filter struct {
	world   *World
	include Signature
	exclude Signature
	matched []*archetype
	seen    int // high-water mark into World.archetypes
}

// Filter creates an empty filter. Without constraints it matches every archetype.
func (w *World) Filter() *Filter {
	w.mustBeLive()
	return &Filter{world: w}
}

// With requires the given component ids. An id already excluded keeps its first
// constraint; development builds panic on the conflict.
func (f *Filter) With(ids ...ComponentID) *Filter {
	for _, id := range ids {
		if f.exclude.Test(id) {
			assert.That(false, "component %d is already excluded from the filter", id)
			continue
		}
		if f.include.Set(id) {
			f.invalidate()
		}
	}
	return f
}

// Without rejects the given component ids. An id already included keeps its first
// constraint; development builds panic on the conflict.
func (f *Filter) Without(ids ...ComponentID) *Filter {
	for _, id := range ids {
		if f.include.Test(id) {
			assert.That(false, "component %d is already included in the filter", id)
			continue
		}
		if f.exclude.Set(id) {
			f.invalidate()
		}
	}
	return f
}

// With requires component T.
func With[T any](f *Filter) *Filter {
	return f.With(ID[T](f.world))
}

// Without rejects component T.
func Without[T any](f *Filter) *Filter {
	return f.Without(ID[T](f.world))
}

// Include returns a copy of the required ids.
func (f *Filter) Include() Signature {
	return f.include.Clone()
}

// Exclude returns a copy of the rejected ids.
func (f *Filter) Exclude() Signature {
	return f.exclude.Clone()
}

// World returns the world the filter runs against.
func (f *Filter) World() *World {
	return f.world
}

// Matches reports whether a signature satisfies the filter.
func (f *Filter) Matches(sig Signature) bool {
	if !sig.Contains(f.include) {
		return false
	}
	return f.exclude.Count() == 0 || !sig.Intersects(f.exclude)
}

// invalidate drops the cache after a constraint change.
func (f *Filter) invalidate() {
	// A walk in progress may still hold the old slice.
	f.matched = nil
	f.seen = 0
}

// resolve appends the archetypes created since the last call that match the filter.
func (f *Filter) resolve() {
	archs := f.world.archetypes
	for _, a := range archs[f.seen:] {
		if f.Matches(a.sig) {
			f.matched = append(f.matched, a)
		}
	}
	f.seen = len(archs)
}

// Archetypes returns the number of matching archetypes.
func (f *Filter) Archetypes() int {
	f.world.mustBeLive()
	f.resolve()
	return len(f.matched)
}

// Count returns the number of members of the matching archetypes. Inside an iteration
// it still counts the membership recorded at lock time.
func (f *Filter) Count() int {
	f.world.mustBeLive()
	f.resolve()
	n := 0
	for _, a := range f.matched {
		n += a.len()
	}
	return n
}

// each visits every live member of the matching archetypes until fn returns false.
// The archetypes are locked for the whole walk; the deferred unlock keeps the counters
// balanced even when fn panics.
func (f *Filter) each(fn func(e Entity) bool) {
	w := f.world
	w.mustBeLive()
	f.resolve()

	matched := f.matched[:len(f.matched):len(f.matched)]
	for _, a := range matched {
		a.lock()
	}
	defer func() {
		for _, a := range matched {
			a.unlock()
		}
	}()

	limit := f.seen
	for _, a := range matched {
		for i, n := 0, a.members.len(); i < n; i++ {
			e := a.members.valueAt(i)
			// Destroyed during this walk; the handle must not be dereferenced.
			if !w.isAlive(e) {
				continue
			}
			if f.visitedElsewhere(e, a, limit) {
				continue
			}
			if !fn(e) {
				return
			}
		}
	}
}

// visitedElsewhere reports whether e, still listed in a, has already moved into another
// archetype this walk covers. Only archetypes below limit belong to the walk.
func (f *Filter) visitedElsewhere(e Entity, a *archetype, limit int) bool {
	cur := f.world.records[e.ID].arch
	if cur == a || cur.id >= limit || !f.Matches(cur.sig) {
		return false
	}
	listed, ok := cur.members.get(e.ID)
	return ok && listed == e
}

// ForEach calls fn for every matching entity.
func (f *Filter) ForEach(fn func(e Entity)) {
	f.each(func(e Entity) bool {
		fn(e)
		return true
	})
}

// Entities returns an iterator over the matching entities. The archetypes stay locked
// until the range loop ends.
func (f *Filter) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		f.each(yield)
	}
}

// require asserts that a visitor only asks for included component types.
func (f *Filter) require(ids ...ComponentID) {
	if !assert.Enabled {
		return
	}
	for _, id := range ids {
		assert.That(f.include.Test(id), "component %d (%s) is not part of the filter",
			id, f.world.types.Type(id))
	}
}
