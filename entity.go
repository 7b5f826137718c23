package sekai

import "strconv"

// Entity is a generational handle to an object in a World. The ID indexes the world's
// entity table and is recycled after destruction; the Generation changes on every
// recycle, so a handle kept past Destroy never matches the entity that reuses its ID.
type Entity struct {
	world      *World
	ID         uint32
	Generation uint32
}

// World returns the world the entity was created in.
func (e Entity) World() *World {
	return e.world
}

// IsAlive reports whether e still refers to a live entity.
func (e Entity) IsAlive() bool {
	return e.world != nil && e.world.isAlive(e)
}

// Destroy removes every component of e and recycles its ID. It reports false for a stale
// handle.
func (e Entity) Destroy() bool {
	w, ok := e.checked()
	if !ok {
		return false
	}
	w.destroy(e)
	return true
}

// Signature returns a copy of the component signature of e.
func (e Entity) Signature() (Signature, bool) {
	if e.world == nil {
		return Signature{}, false
	}
	return e.world.Signature(e)
}

func (e Entity) String() string {
	return "Entity(" + strconv.FormatUint(uint64(e.ID), 10) + ":" + strconv.FormatUint(uint64(e.Generation), 10) + ")"
}

// checked returns the world of e after the liveness gate.
func (e Entity) checked() (*World, bool) {
	if e.world == nil {
		return nil, false
	}
	return e.world, e.world.checkEntity(e)
}
