package sekai

import (
	"testing"

	"github.com/edwinsyarief/sekai/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -run ^TestSignature$ . -count 1
func TestSignature(t *testing.T) {
	t.Parallel()

	t.Run("set clear test", func(t *testing.T) {
		t.Parallel()
		var s Signature
		assert.True(t, s.Set(3))
		assert.False(t, s.Set(3))
		assert.True(t, s.Set(130))
		assert.True(t, s.Test(3))
		assert.True(t, s.Test(130))
		assert.False(t, s.Test(4))
		assert.False(t, s.Test(10_000))
		assert.Equal(t, 2, s.Count())

		assert.True(t, s.Clear(3))
		assert.False(t, s.Clear(3))
		assert.False(t, s.Clear(9_999))
		assert.Equal(t, 1, s.Count())
	})

	t.Run("contains", func(t *testing.T) {
		t.Parallel()
		big := NewSignature(1, 2, 70)
		assert.True(t, big.Contains(NewSignature(1, 70)))
		assert.True(t, big.Contains(Signature{}))
		assert.False(t, big.Contains(NewSignature(1, 200)))
		assert.False(t, NewSignature(1).Contains(big))
	})

	t.Run("intersects", func(t *testing.T) {
		t.Parallel()
		a := NewSignature(1, 64)
		assert.True(t, a.Intersects(NewSignature(64, 300)))
		assert.False(t, a.Intersects(NewSignature(2, 300)))
		assert.False(t, a.Intersects(Signature{}))
	})

	t.Run("equal ignores trailing chunks", func(t *testing.T) {
		t.Parallel()
		a := NewSignature(1, 500)
		a.Clear(500)
		b := NewSignature(1)
		assert.True(t, a.Equal(b))
		assert.True(t, b.Equal(a))
		assert.Equal(t, a.Hash(), b.Hash())
		assert.False(t, a.Equal(NewSignature(2)))
	})

	t.Run("clone is independent", func(t *testing.T) {
		t.Parallel()
		a := NewSignature(5)
		b := a.Clone()
		b.Set(6)
		assert.False(t, a.Test(6))
		assert.Equal(t, 1, a.Count())
		assert.Equal(t, 2, b.Count())
	})

	t.Run("merge and clear all", func(t *testing.T) {
		t.Parallel()
		a := NewSignature(1)
		a.Merge(NewSignature(1, 2, 129))
		assert.Equal(t, []ComponentID{1, 2, 129}, a.IDs())
		assert.Equal(t, 3, a.Count())

		a.ClearAll()
		assert.Equal(t, 0, a.Count())
		assert.True(t, a.Equal(Signature{}))
	})

	t.Run("ids ascend", func(t *testing.T) {
		t.Parallel()
		s := NewSignature(200, 3, 64, 0)
		require.Equal(t, []ComponentID{0, 3, 64, 200}, s.IDs())
		assert.Equal(t, "{0, 3, 64, 200}", s.String())
		assert.Equal(t, "{}", Signature{}.String())
	})
}

// go test -run ^TestSignatureModel$ . -count 1
func TestSignatureModel(t *testing.T) {
	t.Parallel()
	r := testutils.NewRand(t)

	var s Signature
	model := make(map[ComponentID]struct{})
	for range 2_000 {
		id := ComponentID(r.IntN(300))
		if r.IntN(3) == 0 {
			_, had := model[id]
			require.Equal(t, had, s.Clear(id))
			delete(model, id)
		} else {
			_, had := model[id]
			require.Equal(t, !had, s.Set(id))
			model[id] = struct{}{}
		}
		require.Equal(t, len(model), s.Count())
	}
	for id := range ComponentID(300) {
		_, ok := model[id]
		assert.Equal(t, ok, s.Test(id), "id %d", id)
	}
}
