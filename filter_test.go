package sekai

import (
	"slices"
	"testing"

	"github.com/edwinsyarief/sekai/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	compD struct{ V int }
	compE struct{ V int }
	compF struct{ V int }
)

// setByIndex attaches the i-th test component to e.
func setByIndex(e Entity, i int) {
	switch i {
	case 0:
		Set(e, compA{})
	case 1:
		Set(e, compB{})
	case 2:
		Set(e, compC{})
	case 3:
		Set(e, compD{})
	case 4:
		Set(e, compE{})
	default:
		Set(e, compF{})
	}
}

// go test -run ^TestFilterModel$ . -count 1
func TestFilterModel(t *testing.T) {
	t.Parallel()
	r := testutils.NewRand(t)
	w := NewWorld(WithTypeRegistry(NewTypeRegistry()))
	ids := []ComponentID{ID[compA](w), ID[compB](w), ID[compC](w), ID[compD](w), ID[compE](w), ID[compF](w)}

	// Entities keyed to the signature they were given.
	model := make(map[Entity]Signature)
	spawn := func(n int) {
		for range n {
			e := w.CreateEntity()
			var sig Signature
			for i, id := range ids {
				if r.IntN(2) == 0 {
					setByIndex(e, i)
					sig.Set(id)
				}
			}
			if sig.Count() == 0 {
				setByIndex(e, 0)
				sig.Set(ids[0])
			}
			model[e] = sig
		}
	}

	type testFilter struct {
		f        *Filter
		include  Signature
		excluded Signature
	}
	newFilter := func(include, exclude []ComponentID) testFilter {
		return testFilter{
			f:        w.Filter().With(include...).Without(exclude...),
			include:  NewSignature(include...),
			excluded: NewSignature(exclude...),
		}
	}

	filters := []testFilter{
		newFilter(nil, nil),
		newFilter(nil, []ComponentID{ids[1]}),
		newFilter(nil, []ComponentID{ids[2], ids[4]}),
		newFilter([]ComponentID{ids[0]}, nil),
	}
	for range 40 {
		var include, exclude []ComponentID
		for _, id := range ids {
			switch r.IntN(4) {
			case 0:
				include = append(include, id)
			case 1:
				exclude = append(exclude, id)
			}
		}
		filters = append(filters, newFilter(include, exclude))
	}

	matches := func(sig, include, exclude Signature) bool {
		return sig.Contains(include) && (exclude.Count() == 0 || !sig.Intersects(exclude))
	}

	check := func(tf testFilter) {
		t.Helper()
		want := []int{}
		for _, a := range w.archetypes {
			if matches(a.sig, tf.include, tf.excluded) {
				want = append(want, a.id)
			}
		}
		require.Equal(t, len(want), tf.f.Archetypes(), "include %s exclude %s", tf.include, tf.excluded)

		got := make([]int, 0, len(tf.f.matched))
		for _, a := range tf.f.matched {
			got = append(got, a.id)
		}
		slices.Sort(got)
		assert.Equal(t, want, got, "include %s exclude %s", tf.include, tf.excluded)

		var wantEnts []Entity
		for e, sig := range model {
			if matches(sig, tf.include, tf.excluded) {
				wantEnts = append(wantEnts, e)
			}
		}
		assert.ElementsMatch(t, wantEnts, slices.Collect(tf.f.Entities()))
		assert.Equal(t, len(wantEnts), tf.f.Count())
	}

	// Filters resolve first against a few archetypes, then again against the ones created
	// afterwards from where they stopped.
	spawn(5)
	for _, tf := range filters {
		check(tf)
	}
	for range 3 {
		spawn(40)
		for _, tf := range filters {
			check(tf)
		}
	}
}
