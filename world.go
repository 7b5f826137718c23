package sekai

import (
	"sync"

	"github.com/edwinsyarief/sekai/internal/assert"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// entityRecord is where an entity id currently lives.
type entityRecord struct {
	arch       *archetype // nil while the id is free
	generation uint32     // generation the slot was last issued with, or will be reissued with
}

// idPool is the stack of recycled entity ids. The stack itself is guarded, but its callers
// also write the unguarded entity records, so CreateEntity and Destroy are not safe for
// concurrent use.
type idPool struct {
	mu   sync.Mutex
	free []uint32
}

func (p *idPool) push(id uint32) {
	p.mu.Lock()
	p.free = append(p.free, id)
	p.mu.Unlock()
}

func (p *idPool) pop() (uint32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	last := len(p.free) - 1
	if last < 0 {
		return 0, false
	}
	id := p.free[last]
	p.free = p.free[:last]
	return id, true
}

func (p *idPool) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// World owns every archetype, component pool and entity record of one entity space.
// Nothing is shared between worlds except the TypeRegistry that numbers component types.
//
// A World is not safe for concurrent use; run its operations from one goroutine.
type World struct {
	logger     zerolog.Logger
	types      *TypeRegistry
	root       *archetype
	index      map[uint64][]*archetype // signature hash -> archetypes with that hash
	archetypes []*archetype            // append only; position is the archetype id
	records    []entityRecord          // indexed by entity id
	pools      []pool                  // indexed by component id
	tasks      sparseSet[taskRunner]   // component id -> one-shot task buffer
	shared     sharedStore
	free       idPool
	name       string
	opts       options
	alive      int
	destroyed  bool
}

// NewWorld creates an empty world holding only the root archetype.
func NewWorld(opts ...Option) *World {
	o := newOptions(opts...)
	return newWorld("", o)
}

func newWorld(name string, o options) *World {
	w := &World{
		logger:     o.logger.With().Str("world", name).Logger(),
		types:      o.types,
		index:      make(map[uint64][]*archetype, o.archetypeCapacity),
		archetypes: make([]*archetype, 0, o.archetypeCapacity),
		records:    make([]entityRecord, 0, o.entityCapacity),
		name:       name,
		opts:       o,
	}
	w.root = w.register(Signature{})
	w.logger.Debug().
		Int("entity_capacity", o.entityCapacity).
		Int("archetype_capacity", o.archetypeCapacity).
		Msg("world created")
	return w
}

// Name returns the name the world was registered under, empty for standalone worlds.
func (w *World) Name() string {
	return w.name
}

// Types returns the registry numbering this world's component types.
func (w *World) Types() *TypeRegistry {
	return w.types
}

// Logger returns the world's logger.
func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

// Len returns the number of alive entities.
func (w *World) Len() int {
	w.mustBeLive()
	return w.alive
}

// ArchetypeCount returns the number of archetypes created so far, the root included.
func (w *World) ArchetypeCount() int {
	w.mustBeLive()
	return len(w.archetypes)
}

// IsDestroyed reports whether Destroy was called.
func (w *World) IsDestroyed() bool {
	return w.destroyed
}

// Destroy releases every entity, component and archetype. Any later operation on the
// world panics.
func (w *World) Destroy() {
	w.mustBeLive()
	for _, p := range w.pools {
		if p != nil {
			p.clear()
		}
	}
	w.shared.clear()
	w.pools = nil
	w.records = nil
	w.archetypes = nil
	w.index = nil
	w.root = nil
	w.tasks = sparseSet[taskRunner]{}
	w.alive = 0
	w.destroyed = true
	w.logger.Debug().Msg("world destroyed")
}

// mustBeLive panics when the world was destroyed. Unlike the other structural checks it
// stays in release builds.
func (w *World) mustBeLive() {
	if w == nil {
		panic(eris.Wrap(ErrWorldDestroyed, "nil world"))
	}
	if w.destroyed {
		panic(eris.Wrapf(ErrWorldDestroyed, "world %q", w.name))
	}
}

// -------------------------------------------------------------------------------------------------
// Entity lifecycle
// -------------------------------------------------------------------------------------------------

// CreateEntity creates an entity without components in the root archetype.
func (w *World) CreateEntity() Entity {
	w.mustBeLive()
	id, ok := w.free.pop()
	if !ok {
		id = uint32(len(w.records)) //nolint:gosec // entity ids are 32-bit by definition
		w.records = append(w.records, entityRecord{generation: 1})
	}
	rec := &w.records[id]
	assert.That(rec.arch == nil, "recycled entity id %d is still in use", id)
	rec.arch = w.root

	e := Entity{ID: id, Generation: rec.generation, world: w}
	w.root.addEntity(e)
	w.alive++
	return e
}

// CreateEntities creates count entities without components.
func (w *World) CreateEntities(count int) []Entity {
	if count <= 0 {
		return nil
	}
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = w.CreateEntity()
	}
	return ents
}

// isAlive reports whether e is a live handle into w.
func (w *World) isAlive(e Entity) bool {
	if w.destroyed || e.world != w || int(e.ID) >= len(w.records) {
		return false
	}
	rec := &w.records[e.ID]
	return rec.arch != nil && rec.generation == e.Generation
}

// checkEntity is the gate of every mutating entity operation. Stale handles trip an
// assertion in development builds and are reported as false in release builds.
func (w *World) checkEntity(e Entity) bool {
	w.mustBeLive()
	ok := w.isAlive(e)
	assert.That(ok, "stale entity handle %s", e)
	return ok
}

// destroy strips every component of e, leaves its archetype and recycles its id with the
// next generation. Generation 0 means "never issued" and is skipped on wraparound.
func (w *World) destroy(e Entity) {
	rec := &w.records[e.ID]
	a := rec.arch
	a.sig.Range(func(id ComponentID) {
		w.pools[id].remove(e.ID)
	})
	a.removeEntity(e)

	rec.arch = nil
	rec.generation++
	if rec.generation == 0 {
		rec.generation = 1
	}
	w.free.push(e.ID)
	w.alive--
}

// move transfers e to another archetype and updates its record.
func (w *World) move(e Entity, rec *entityRecord, to *archetype) {
	rec.arch.removeEntity(e)
	to.addEntity(e)
	rec.arch = to
}

// Signature returns a copy of the signature of e.
func (w *World) Signature(e Entity) (Signature, bool) {
	w.mustBeLive()
	if !w.isAlive(e) {
		return Signature{}, false
	}
	return w.records[e.ID].arch.sig.Clone(), true
}

// -------------------------------------------------------------------------------------------------
// Archetype graph
// -------------------------------------------------------------------------------------------------

// findOrCreate returns the canonical archetype for sig. It walks from the root following
// one edge per set bit in ascending order and creates the missing nodes on the way. The
// first walk to a signature costs O(sig.Count()); edges are memoized afterwards.
func (w *World) findOrCreate(sig Signature) *archetype {
	cur := w.root
	sig.Range(func(id ComponentID) {
		next, ok := cur.next.get(uint32(id))
		if !ok {
			next = w.extend(cur, id)
		}
		cur = next
	})
	return cur
}

// extend links from to the archetype that has id added, creating it if needed.
func (w *World) extend(from *archetype, id ComponentID) *archetype {
	sig := from.sig.Clone()
	sig.Set(id)
	to := w.lookup(sig)
	if to == nil {
		to = w.register(sig)
	}
	from.next.set(uint32(id), to)
	to.prior.set(uint32(id), from)
	return to
}

// lookup returns the archetype with exactly sig, or nil.
func (w *World) lookup(sig Signature) *archetype {
	for _, a := range w.index[sig.Hash()] {
		if a.sig.Equal(sig) {
			return a
		}
	}
	return nil
}

// register appends a new archetype for sig.
func (w *World) register(sig Signature) *archetype {
	assert.That(w.lookup(sig) == nil, "archetype %s already exists", sig)
	a := newArchetype(len(w.archetypes), sig, w.opts.entityCapacity)
	w.archetypes = append(w.archetypes, a)
	h := sig.Hash()
	w.index[h] = append(w.index[h], a)
	w.logger.Debug().
		Int("archetype_id", a.id).
		Int("components", sig.Count()).
		Uint64("hash", h).
		Msg("archetype created")
	return a
}

// withComponent returns the archetype reached from a by adding id.
func (w *World) withComponent(a *archetype, id ComponentID) *archetype {
	if next, ok := a.next.get(uint32(id)); ok {
		return next
	}
	sig := a.sig.Clone()
	sig.Set(id)
	next := w.findOrCreate(sig)
	a.next.set(uint32(id), next)
	next.prior.set(uint32(id), a)
	return next
}

// withoutComponent returns the archetype reached from a by removing id.
func (w *World) withoutComponent(a *archetype, id ComponentID) *archetype {
	if prior, ok := a.prior.get(uint32(id)); ok {
		return prior
	}
	sig := a.sig.Clone()
	sig.Clear(id)
	prior := w.findOrCreate(sig)
	a.prior.set(uint32(id), prior)
	prior.next.set(uint32(id), a)
	return prior
}

// ArchetypeInfo describes one archetype of a world.
type ArchetypeInfo struct {
	Signature Signature
	ID        int
	Len       int
}

// Archetypes returns a description of every archetype in creation order.
func (w *World) Archetypes() []ArchetypeInfo {
	w.mustBeLive()
	infos := make([]ArchetypeInfo, len(w.archetypes))
	for i, a := range w.archetypes {
		infos[i] = ArchetypeInfo{ID: a.id, Signature: a.sig.Clone(), Len: a.len()}
	}
	return infos
}
