// Package sapling is a small 2D game engine core for [Ebitengine].
//
// Sapling provides a transform hierarchy, a scene of game objects drawn in
// z-order, a fixed-step engine loop with scene transitions, keyboard input,
// tweens (via [gween]) and configuration. The companion package
// sapling/ecs holds an entity manager with an inverted component index, and
// sapling/termrender draws scenes in a terminal.
//
// # Quick start
//
//	cfg := sapling.DefaultConfig()
//	engine, err := sapling.NewEngine(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scene := sapling.NewScene("main")
//	scene.OnInitialize = func(s *sapling.Scene) {
//		box := s.NewObject("box")
//		box.SetPosition(sapling.Vec(100, 100))
//		box.AddComponent(sapling.NewSprite(sapling.RGB(80, 180, 255), sapling.Vec(40, 40)))
//	}
//
//	engine.LoadScene(scene)
//	log.Fatal(engine.Run())
//
// # Transforms
//
// Every [Transform] stores a local position, rotation and scale and belongs
// to a [Hierarchy]. World values are derived on each read by walking the
// parent chain: world rotation is the sum of rotations, world scale the
// component-wise product of scales, and world position is the parent's
// world position plus the local position scaled and rotated by the parent.
//
//	planet.Transform.SetParent(sun.Transform)
//	planet.Transform.SetLocalPosition(sapling.Vec(120, 0))
//	sun.Transform.Rotate(0.1) // the planet orbits
//
// [Transform.SetParent] rejects cycles with a [CycleError] and leaves the
// tree untouched. [Transform.Destroy] orphans children; they keep their
// local values and become roots.
//
// A Hierarchy holds one read/write lock for all of its transforms, so world
// reads may run concurrently with each other but not with reparenting or
// local mutation.
//
// # Scenes and game objects
//
// A [Scene] owns top-level [GameObject] values, each with a Transform, child
// objects and components. Components implementing [Renderable] draw, and
// components implementing [Updater] update. Rendering visits siblings in
// ascending [GameObject.ZOrder]; ties keep insertion order. Children draw
// after their parent regardless of z.
//
// [GameObject.Destroy] is deferred to the end of the current
// [Scene.Update], and children of a destroyed object become top-level
// objects of the scene.
//
// # Engine
//
// [Engine] implements [ebiten.Game]. [Engine.LoadScene] switches scenes at
// the start of the next update: the outgoing scene's Cleanup completes before
// the incoming scene's Initialize, and only the incoming scene updates in that
// frame.
//
// # Logging
//
// Sapling logs through [go.uber.org/zap]. Loggers are passed in with
// [WithLogger] and [Scene.SetLogger]; the default discards everything.
// [Scene.SetDebugMode] enables tree depth and child count warnings and
// per-frame render timings.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package sapling
