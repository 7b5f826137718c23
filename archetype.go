package sekai

import "github.com/edwinsyarief/sekai/internal/assert"

// archetypeID is the position of an archetype in World.archetypes.
type archetypeID = int

// pendingOp is a membership change recorded while an archetype is locked.
type pendingOp struct {
	entity Entity
	add    bool
}

// archetype is the canonical node for one exact signature. It owns the membership of every
// entity sharing that signature and the memoized single-component edges to its neighbours.
type archetype struct {
	id      archetypeID
	sig     Signature
	members sparseSet[Entity]     // entity id -> entity
	next    sparseSet[*archetype] // component id -> archetype with that component added
	prior   sparseSet[*archetype] // component id -> archetype with that component removed
	pending []pendingOp
	locks   int
}

func newArchetype(id archetypeID, sig Signature, capacity int) *archetype {
	return &archetype{
		id:      id,
		sig:     sig,
		members: newSparseSet[Entity](capacity),
	}
}

// addEntity makes e a member, or records the add while the archetype is locked.
func (a *archetype) addEntity(e Entity) {
	if a.locks > 0 {
		a.pending = append(a.pending, pendingOp{entity: e, add: true})
		return
	}
	assert.That(!a.members.has(e.ID), "entity %d is already in archetype %d", e.ID, a.id)
	a.members.set(e.ID, e)
}

// removeEntity drops e, or records the remove while the archetype is locked.
func (a *archetype) removeEntity(e Entity) {
	if a.locks > 0 {
		a.pending = append(a.pending, pendingOp{entity: e, add: false})
		return
	}
	ok := a.members.remove(e.ID)
	assert.That(ok, "entity %d is not in archetype %d", e.ID, a.id)
}

func (a *archetype) lock() {
	a.locks++
}

// unlock releases one lock. The last release replays the recorded operations in order.
// Replay is tolerant: an add of a present entity overwrites it and a remove of an absent
// one is skipped, so the final membership follows the last operation recorded per entity.
func (a *archetype) unlock() {
	assert.That(a.locks > 0, "archetype %d unlocked more times than locked", a.id)
	a.locks--
	if a.locks > 0 || len(a.pending) == 0 {
		return
	}
	for _, op := range a.pending {
		if op.add {
			a.members.set(op.entity.ID, op.entity)
		} else {
			a.members.remove(op.entity.ID)
		}
	}
	clear(a.pending)
	a.pending = a.pending[:0]
}

func (a *archetype) len() int {
	return a.members.len()
}
