package sekai

import (
	"sync"
	"testing"

	"github.com/edwinsyarief/sekai/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -run ^TestEntityLifecycle$ . -count 1
func TestEntityLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("ids and generations", func(t *testing.T) {
		t.Parallel()
		w := NewWorld()
		e1 := w.CreateEntity()
		e2 := w.CreateEntity()
		assert.Equal(t, uint32(0), e1.ID)
		assert.Equal(t, uint32(1), e1.Generation)
		assert.Equal(t, uint32(1), e2.ID)
		assert.Equal(t, 2, w.Len())
		assert.Same(t, w.root, w.records[e1.ID].arch)
	})

	t.Run("recycled id gets the next generation", func(t *testing.T) {
		t.Parallel()
		w := NewWorld()
		e := w.CreateEntity()
		require.True(t, e.Destroy())
		assert.False(t, e.IsAlive())
		assert.Equal(t, 0, w.Len())

		reborn := w.CreateEntity()
		assert.Equal(t, e.ID, reborn.ID)
		assert.Equal(t, e.Generation+1, reborn.Generation)
		assert.True(t, reborn.IsAlive())
		assert.False(t, e.IsAlive())
	})

	t.Run("generation zero is skipped", func(t *testing.T) {
		t.Parallel()
		w := NewWorld()
		e := w.CreateEntity()
		w.records[e.ID].generation = ^uint32(0)
		e.Generation = ^uint32(0)
		require.True(t, e.Destroy())

		reborn := w.CreateEntity()
		assert.Equal(t, uint32(1), reborn.Generation)
	})

	t.Run("destroy strips every pool", func(t *testing.T) {
		t.Parallel()
		w := NewWorld(WithTypeRegistry(NewTypeRegistry()))
		e := w.CreateEntity()
		Add(e, compA{1})
		Add(e, compB{2})
		e.Destroy()

		for _, p := range w.pools {
			if p != nil {
				assert.False(t, p.has(e.ID), p.name())
				assert.Equal(t, 0, p.len(), p.name())
			}
		}
		for _, a := range w.archetypes {
			assert.Equal(t, 0, a.len())
		}
	})

	t.Run("other world handles are stale", func(t *testing.T) {
		t.Parallel()
		w1 := NewWorld()
		w2 := NewWorld()
		e := w1.CreateEntity()
		w2.CreateEntity()
		assert.False(t, w2.isAlive(e))
	})
}

// go test -run ^TestPoolCoherenceModel$ . -count 1
func TestPoolCoherenceModel(t *testing.T) {
	t.Parallel()
	type op uint8
	const (
		opCreate  op = 20
		opDestroy op = 10
		opAdd     op = 30
		opRemove  op = 25
		opIterate op = 5
	)
	ops := []op{opCreate, opDestroy, opAdd, opRemove, opIterate}

	r := testutils.NewRand(t)
	w := NewWorld(WithTypeRegistry(NewTypeRegistry()))
	idA, idB, idC := ID[compA](w), ID[compB](w), ID[compC](w)

	// Expected component values per live entity; absent keys mean absent components.
	type state struct{ a, b, c *int }
	model := make(map[Entity]*state)

	intp := func(v int) *int { return &v }

	for i := range 3_000 {
		switch testutils.RandWeightedOp(r, ops) {
		case opCreate:
			model[w.CreateEntity()] = &state{}
		case opDestroy:
			if len(model) == 0 {
				continue
			}
			e := testutils.RandMapKey(r, model)
			require.True(t, e.Destroy())
			delete(model, e)
		case opAdd:
			if len(model) == 0 {
				continue
			}
			e := testutils.RandMapKey(r, model)
			s := model[e]
			switch r.IntN(3) {
			case 0:
				Set(e, compA{i})
				s.a = intp(i)
			case 1:
				Set(e, compB{i})
				s.b = intp(i)
			default:
				Set(e, compC{i})
				s.c = intp(i)
			}
		case opRemove:
			if len(model) == 0 {
				continue
			}
			e := testutils.RandMapKey(r, model)
			s := model[e]
			var removed bool
			switch r.IntN(3) {
			case 0:
				removed = Remove[compA](e)
				assert.Equal(t, s.a != nil, removed)
				s.a = nil
			case 1:
				removed = Remove[compB](e)
				assert.Equal(t, s.b != nil, removed)
				s.b = nil
			default:
				removed = Remove[compC](e)
				assert.Equal(t, s.c != nil, removed)
				s.c = nil
			}
			if removed && s.a == nil && s.b == nil && s.c == nil {
				// Removing the last component destroys the entity.
				require.False(t, e.IsAlive())
				delete(model, e)
			}
		case opIterate:
			n := 0
			w.Filter().With(idA).ForEach(func(Entity) { n++ })
			want := 0
			for _, s := range model {
				if s.a != nil {
					want++
				}
			}
			require.Equal(t, want, n)
		}
	}

	require.Equal(t, len(model), w.Len())
	members := 0
	for _, a := range w.archetypes {
		members += a.len()
	}
	require.Equal(t, len(model), members)

	for e, s := range model {
		require.True(t, e.IsAlive())
		sig, ok := e.Signature()
		require.True(t, ok)
		assert.True(t, sig.Equal(w.records[e.ID].arch.sig))

		check := func(id ComponentID, want *int, get func() (int, bool)) {
			assert.Equal(t, want != nil, sig.Test(id))
			inPool := int(id) < len(w.pools) && w.pools[id] != nil && w.pools[id].has(e.ID)
			assert.Equal(t, want != nil, inPool)
			if v, ok := get(); want != nil {
				require.True(t, ok)
				assert.Equal(t, *want, v)
			} else {
				assert.False(t, ok)
			}
		}
		check(idA, s.a, func() (int, bool) {
			if p := Get[compA](e); p != nil {
				return p.V, true
			}
			return 0, false
		})
		check(idB, s.b, func() (int, bool) {
			if p := Get[compB](e); p != nil {
				return p.V, true
			}
			return 0, false
		})
		check(idC, s.c, func() (int, bool) {
			if p := Get[compC](e); p != nil {
				return p.V, true
			}
			return 0, false
		})
	}
}

// go test -run ^TestIDPool$ . -count 1
func TestIDPool(t *testing.T) {
	t.Parallel()
	var p idPool
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				p.push(uint32(g*100 + i))
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 800, p.len())

	seen := make(map[uint32]struct{}, 800)
	for {
		id, ok := p.pop()
		if !ok {
			break
		}
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 800)
	assert.Equal(t, 0, p.len())
}
