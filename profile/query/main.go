// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.pprof

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

type comp3 struct {
	V int64
	W int64
}

type comp4 struct {
	V int64
	W int64
}

type comp5 struct {
	V int64
	W int64
}

type comp6 struct {
	V int64
	W int64
}

func main() {
	count := 20
	iters := 1000
	entities := 100000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		w := sekai.NewWorld(sekai.WithEntityCapacity(numEntities))
		for i := range numEntities {
			e := w.CreateEntity()
			sekai.Add(e, comp1{})
			sekai.Add(e, comp2{V: 1, W: 1})
			sekai.Add(e, comp3{V: 1, W: 1})
			sekai.Add(e, comp4{V: 1, W: 1})
			sekai.Add(e, comp5{V: 1, W: 1})
			// Split the entities over two archetypes.
			if i%2 == 0 {
				sekai.Add(e, comp6{V: 1, W: 1})
			}
		}

		query := w.Filter()
		sekai.With[comp5](sekai.With[comp4](sekai.With[comp3](sekai.With[comp2](sekai.With[comp1](query)))))
		for range iters {
			sekai.Each5(query, func(_ sekai.Entity, c1 *comp1, c2 *comp2, c3 *comp3, c4 *comp4, c5 *comp5) {
				c1.V += c2.V + c3.V + c4.V + c5.V
				c1.W += c2.W + c3.W + c4.W + c5.W
			})
		}
		w.Destroy()
	}
}
