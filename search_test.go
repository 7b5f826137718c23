package sekai_test

import (
	"testing"

	"github.com/edwinsyarief/sekai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -run ^TestSearch$ . -count 1
func TestSearch(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*sekai.World, []sekai.Entity) {
		t.Helper()
		world := setupWorld(t)
		ents := world.CreateEntities(4)
		for i, e := range ents {
			sekai.Add(e, Health{HP: i * 50})
		}
		sekai.Add(ents[3], Tag{})
		return world, ents
	}

	t.Run("field comparison", func(t *testing.T) {
		t.Parallel()
		world, ents := setup(t)
		got, err := world.Search(sekai.With[Health](world.Filter()), "Health.HP >= 100")
		require.NoError(t, err)
		assert.ElementsMatch(t, []sekai.Entity{ents[2], ents[3]}, got)
	})

	t.Run("entity id", func(t *testing.T) {
		t.Parallel()
		world, ents := setup(t)
		got, err := world.Search(world.Filter(), "_id == 1")
		require.NoError(t, err)
		assert.Equal(t, []sekai.Entity{ents[1]}, got)
	})

	t.Run("filter narrows first", func(t *testing.T) {
		t.Parallel()
		world, ents := setup(t)
		f := sekai.Without[Tag](sekai.With[Health](world.Filter()))
		got, err := world.Search(f, "Health.HP > 0")
		require.NoError(t, err)
		assert.ElementsMatch(t, []sekai.Entity{ents[1], ents[2]}, got)
	})

	t.Run("empty clause", func(t *testing.T) {
		t.Parallel()
		world, _ := setup(t)
		got, err := world.Search(sekai.With[Tag](world.Filter()), "")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("invalid clause", func(t *testing.T) {
		t.Parallel()
		world, _ := setup(t)
		_, err := world.Search(world.Filter(), "Health.HP >")
		require.Error(t, err)
	})

	t.Run("non bool clause", func(t *testing.T) {
		t.Parallel()
		world, _ := setup(t)
		_, err := world.Search(sekai.With[Health](world.Filter()), "Health.HP")
		require.Error(t, err)
	})

	t.Run("missing component", func(t *testing.T) {
		t.Parallel()
		world, ents := setup(t)
		bare := world.CreateEntity()
		sekai.Add(bare, Tag{})

		got, err := world.Search(world.Filter(), "(Health?.HP ?? 0) >= 100")
		require.NoError(t, err)
		assert.ElementsMatch(t, []sekai.Entity{ents[2], ents[3]}, got)

		_, err = world.Search(world.Filter(), "Health.HP >= 100")
		require.Error(t, err)
	})

	t.Run("same type name", func(t *testing.T) {
		t.Parallel()
		type Health struct{ HP int } // shares its name with the package-level Health
		world, ents := setup(t)
		sekai.Add(ents[1], Health{HP: 1})

		_, err := world.Search(world.Filter(), "_id >= 0")
		require.Error(t, err)
		_, err = sekai.MarshalEntity(ents[1])
		require.Error(t, err)

		got, err := world.Search(sekai.Without[Health](world.Filter()), "_id >= 0")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("foreign filter", func(t *testing.T) {
		t.Parallel()
		world, _ := setup(t)
		other := setupWorld(t)
		_, err := world.Search(other.Filter(), "")
		require.Error(t, err)
	})
}

// go test -run ^TestMarshalEntity$ . -count 1
func TestMarshalEntity(t *testing.T) {
	t.Parallel()
	world := setupWorld(t)
	world.CreateEntity()
	e := world.CreateEntity()
	sekai.Add(e, Position{X: 1, Y: 2})
	sekai.Add(e, Health{HP: 7})

	bz, err := sekai.MarshalEntity(e)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"_id":1,"_generation":1,"Position":{"X":1,"Y":2},"Health":{"HP":7}}`,
		string(bz))

	e.Destroy()
	_, err = sekai.MarshalEntity(e)
	require.Error(t, err)
}
