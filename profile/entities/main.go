// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/edwinsyarief/sekai"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	count := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		w := sekai.NewWorld(sekai.WithEntityCapacity(numEntities))
		query := sekai.With[comp2](sekai.With[comp1](w.Filter()))
		entities := make([]sekai.Entity, 0, numEntities)

		for range iters {
			for range numEntities {
				e := w.CreateEntity()
				sekai.Add(e, comp1{})
				sekai.Add(e, comp2{V: 1, W: 1})
			}
			entities = entities[:0]
			sekai.Each2(query, func(e sekai.Entity, c1 *comp1, c2 *comp2) {
				entities = append(entities, e)
				c1.V += c2.V
				c1.W += c2.W
			})
			for _, e := range entities {
				e.Destroy()
			}
		}
		w.Destroy()
	}
}
