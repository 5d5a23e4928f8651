// Profiling:
// go build ./profile/query
// ./query -mode cpu
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.pprof

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/phanxgames/sapling"
	"github.com/phanxgames/sapling/ecs"
	"github.com/pkg/profile"
)

var velocityType = ecs.RegisterComponentType("profile.Velocity")

type velocity struct {
	sapling.Vec2
}

func (*velocity) ComponentType() ecs.ComponentType { return velocityType }

func main() {
	mode := flag.String("mode", "mem", "profile mode: cpu or mem")
	rounds := flag.Int("rounds", 20, "rounds")
	iters := flag.Int("iters", 500, "queries per round")
	entities := flag.Int("entities", 5000, "entities per round")
	flag.Parse()

	var p interface{ Stop() }
	if *mode == "cpu" {
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	} else {
		p = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	moved := run(*rounds, *iters, *entities)
	p.Stop()
	fmt.Println("moved", moved)
}

func run(rounds, iters, numEntities int) int {
	moved := 0
	for range rounds {
		m := ecs.NewEntityManager()
		h := sapling.NewHierarchy()
		for i := range numEntities {
			id := m.CreateEntity()
			_ = m.AddComponent(id, ecs.NewTransformComponent(h, sapling.Vec(float64(i), 0)))
			if i%3 == 0 {
				_ = m.AddComponent(id, &velocity{sapling.Vec(1, 1)})
			}
		}

		for i := range iters {
			for _, id := range m.GetEntitiesWith(ecs.TransformType, velocityType) {
				e, _ := m.Entity(id)
				tc, _ := ecs.Get[*ecs.TransformComponent](e, ecs.TransformType)
				v, _ := ecs.Get[*velocity](e, velocityType)
				tc.Translate(v.Vec2)
				moved++
			}
			// Invalidate the memo every few iterations.
			if i%10 == 0 {
				m.DestroyEntity(m.CreateEntity())
			}
		}

		_ = m.ForEachParallel(context.Background(), []ecs.ComponentType{ecs.TransformType}, 0,
			func(_ context.Context, _ ecs.View, e *ecs.Entity) error {
				tc, _ := ecs.Get[*ecs.TransformComponent](e, ecs.TransformType)
				_ = tc.WorldPosition()
				return nil
			})
	}
	return moved
}
