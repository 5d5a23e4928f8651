package sapling

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultBindings maps the friendly key names used by game code to keys.
// Names not listed here are resolved with ebiten's own key names ("a", "7",
// "f1", ...).
var defaultBindings = map[string][]ebiten.Key{
	"up":     {ebiten.KeyArrowUp},
	"down":   {ebiten.KeyArrowDown},
	"left":   {ebiten.KeyArrowLeft},
	"right":  {ebiten.KeyArrowRight},
	"space":  {ebiten.KeySpace},
	"ctrl":   {ebiten.KeyControlLeft, ebiten.KeyControlRight},
	"shift":  {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
	"alt":    {ebiten.KeyAltLeft, ebiten.KeyAltRight},
	"escape": {ebiten.KeyEscape},
	"enter":  {ebiten.KeyEnter},
	"tab":    {ebiten.KeyTab},
}

// Input maps key names to keyboard keys and snapshots their state once per
// frame, so every object sees the same answer within a frame.
type Input struct {
	bindings map[string][]ebiten.Key
	down     map[string]bool
	prev     map[string]bool
	injected map[string]bool
	poll     func(ebiten.Key) bool
}

// NewInput returns an Input with the default bindings.
func NewInput() *Input {
	in := &Input{
		bindings: make(map[string][]ebiten.Key, len(defaultBindings)),
		down:     make(map[string]bool),
		prev:     make(map[string]bool),
		injected: make(map[string]bool),
		poll:     ebiten.IsKeyPressed,
	}
	for name, keys := range defaultBindings {
		in.bindings[name] = keys
	}
	return in
}

// Bind replaces the keys bound to name.
func (in *Input) Bind(name string, keys ...ebiten.Key) {
	in.bindings[strings.ToLower(name)] = keys
}

// BindNames binds name to keys given by ebiten key names, e.g. "Space" or
// "ArrowUp". Used for bindings loaded from configuration.
func (in *Input) BindNames(name string, keyNames ...string) error {
	keys := make([]ebiten.Key, 0, len(keyNames))
	for _, kn := range keyNames {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(kn)); err != nil {
			return fmt.Errorf("bind %q: unknown key %q", name, kn)
		}
		keys = append(keys, k)
	}
	in.Bind(name, keys...)
	return nil
}

// Poll snapshots the state of every known binding. Called by the engine once
// at the start of each frame.
func (in *Input) Poll() {
	in.prev, in.down = in.down, in.prev
	clear(in.down)
	for name, keys := range in.bindings {
		pressed := in.injected[name]
		for _, k := range keys {
			if pressed {
				break
			}
			pressed = in.poll(k)
		}
		if pressed {
			in.down[name] = true
		}
	}
}

// IsKeyPressed reports whether any key bound to name was down at the last
// Poll. Unbound names are resolved as ebiten key names and bound lazily; the
// first query for such a name returns false.
func (in *Input) IsKeyPressed(name string) bool {
	name = strings.ToLower(name)
	if _, ok := in.bindings[name]; !ok {
		in.resolve(name)
		return false
	}
	return in.down[name]
}

// IsKeyJustPressed reports whether name went down at the last Poll.
func (in *Input) IsKeyJustPressed(name string) bool {
	return in.IsKeyPressed(name) && !in.prev[strings.ToLower(name)]
}

// Inject forces name down (or releases the forced state) starting at the next
// Poll. Used for scripted input and tests.
func (in *Input) Inject(name string, down bool) {
	name = strings.ToLower(name)
	if _, ok := in.bindings[name]; !ok {
		in.resolve(name)
		if _, ok := in.bindings[name]; !ok {
			in.bindings[name] = nil
		}
	}
	if down {
		in.injected[name] = true
	} else {
		delete(in.injected, name)
	}
}

func (in *Input) resolve(name string) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return
	}
	in.bindings[name] = []ebiten.Key{k}
}
