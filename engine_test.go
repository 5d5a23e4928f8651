package sapling

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// headlessInput returns an Input that never reads the keyboard.
func headlessInput() *Input {
	in := NewInput()
	in.poll = func(ebiten.Key) bool { return false }
	return in
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), WithInput(headlessInput()))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// tracedScene logs its lifecycle into log.
func tracedScene(name string, log *[]string) *Scene {
	s := NewScene(name)
	s.OnInitialize = func(*Scene) { *log = append(*log, name+".init") }
	s.OnCleanup = func(*Scene) { *log = append(*log, name+".cleanup") }
	s.OnUpdate = func(*Scene, float64) { *log = append(*log, name+".update") }
	return s
}

func TestEngineSceneTransition(t *testing.T) {
	e := newTestEngine(t)
	var log []string
	a := tracedScene("a", &log)
	b := tracedScene("b", &log)

	e.LoadScene(a)
	if e.CurrentScene() != nil {
		t.Fatal("LoadScene switched before Update")
	}
	if err := e.Update(); err != nil {
		t.Fatal(err)
	}
	if e.CurrentScene() != a || a.Engine() != e {
		t.Fatal("scene a not active")
	}

	e.LoadScene(b)
	if err := e.Update(); err != nil {
		t.Fatal(err)
	}
	assertOrder(t, log, "a.init", "a.update", "a.cleanup", "b.init", "b.update")
	if a.Engine() != nil || a.IsInitialized() {
		t.Error("outgoing scene still attached")
	}
	if e.Frame() != 2 {
		t.Errorf("Frame = %d, want 2", e.Frame())
	}
}

func TestEngineLoadSceneReplacesPending(t *testing.T) {
	e := newTestEngine(t)
	var log []string
	a := tracedScene("a", &log)
	b := tracedScene("b", &log)

	e.LoadScene(a)
	e.LoadScene(b)
	if err := e.Update(); err != nil {
		t.Fatal(err)
	}
	assertOrder(t, log, "b.init", "b.update")
}

func TestEngineReloadSameSceneIsNoop(t *testing.T) {
	e := newTestEngine(t)
	var log []string
	a := tracedScene("a", &log)
	e.LoadScene(a)
	_ = e.Update()
	e.LoadScene(a)
	_ = e.Update()
	assertOrder(t, log, "a.init", "a.update", "a.update")
}

func TestEngineSceneUsesFixedStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TPS = 50
	e, err := NewEngine(cfg, WithInput(headlessInput()))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene("dt")
	var got float64
	s.OnUpdate = func(_ *Scene, dt float64) { got = dt }
	e.LoadScene(s)
	_ = e.Update()
	assertNear(t, "dt", got, 0.02)
}

func TestEngineStop(t *testing.T) {
	e := newTestEngine(t)
	e.Stop()
	if err := e.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Stop = %v, want ebiten.Termination", err)
	}
}

func TestEngineLayout(t *testing.T) {
	e := newTestEngine(t)
	w, h := e.Layout(1, 1)
	if w != 800 || h != 600 {
		t.Errorf("Layout = %dx%d", w, h)
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TPS = 0
	if _, err := NewEngine(cfg); err == nil {
		t.Error("expected error for TPS 0")
	}

	cfg = DefaultConfig()
	cfg.Bindings = map[string][]string{"jump": {"NotAKey"}}
	if _, err := NewEngine(cfg); err == nil {
		t.Error("expected error for unknown key name")
	}
}

func TestEngineAppliesConfigBindings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bindings = map[string][]string{"jump": {"Space", "W"}}
	in := headlessInput()
	in.poll = func(k ebiten.Key) bool { return k == ebiten.KeyW }
	e, err := NewEngine(cfg, WithInput(in))
	if err != nil {
		t.Fatal(err)
	}
	_ = e.Update()
	if !e.Input().IsKeyPressed("jump") {
		t.Error("jump not pressed via W")
	}
}
