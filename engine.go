package sapling

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Engine runs the fixed-step game loop: poll input, update the active scene,
// render it. It implements ebiten.Game, so it can be handed to
// ebiten.RunGame directly or started with Run.
type Engine struct {
	cfg        Config
	log        *zap.Logger
	input      *Input
	script     *InputScript
	renderer   *EbitenRenderer
	background Color

	current *Scene
	next    *Scene
	switchQ bool

	frame    uint64
	stopping bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger. Scenes loaded into the engine log
// through it too.
func WithLogger(log *zap.Logger) EngineOption {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithInput replaces the default keyboard input.
func WithInput(in *Input) EngineOption {
	return func(e *Engine) {
		if in != nil {
			e.input = in
		}
	}
}

// WithInputScript replays s through the engine's input, one step per frame.
func WithInputScript(s *InputScript) EngineOption {
	return func(e *Engine) { e.script = s }
}

// NewEngine validates cfg and returns an engine with no active scene.
func NewEngine(cfg Config, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	bg, err := ParseHexColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	e := &Engine{
		cfg:        cfg,
		log:        zap.NewNop(),
		input:      NewInput(),
		renderer:   NewEbitenRenderer(nil),
		background: bg,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(zap.String("session", uuid.NewString()))
	for action, keys := range cfg.Bindings {
		if err := e.input.BindNames(action, keys...); err != nil {
			return nil, fmt.Errorf("new engine: %w", err)
		}
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Logger returns the engine logger.
func (e *Engine) Logger() *zap.Logger { return e.log }

// Input returns the keyboard input state.
func (e *Engine) Input() *Input { return e.input }

// CurrentScene returns the active scene, or nil.
func (e *Engine) CurrentScene() *Scene { return e.current }

// Frame returns the number of completed updates.
func (e *Engine) Frame() uint64 { return e.frame }

// LoadScene schedules s to become the active scene at the start of the next
// Update. The outgoing scene's Cleanup completes before s.Initialize runs, and
// only the incoming scene updates in the frame of the switch. Calling
// LoadScene again before the switch replaces the pending scene.
func (e *Engine) LoadScene(s *Scene) {
	e.next = s
	e.switchQ = true
}

// applyTransition performs a pending scene switch.
func (e *Engine) applyTransition() {
	if !e.switchQ {
		return
	}
	out, in := e.current, e.next
	e.next, e.switchQ = nil, false
	if out == in {
		return
	}
	if out != nil {
		out.Cleanup()
		out.engine = nil
		e.log.Info("scene unloaded", zap.String("scene", out.Name))
	}
	e.current = in
	if in != nil {
		in.engine = e
		in.SetLogger(e.log)
		in.SetDebugMode(e.cfg.Debug)
		in.Initialize()
		e.log.Info("scene loaded", zap.String("scene", in.Name))
	}
}

// Update implements ebiten.Game. It applies a pending scene switch, runs the
// input script if any, polls input and advances the active scene by one fixed
// step.
func (e *Engine) Update() error {
	if e.stopping {
		return ebiten.Termination
	}
	e.applyTransition()
	if e.script != nil {
		e.script.step(e.input)
	}
	e.input.Poll()
	if e.current != nil {
		e.current.Update(1 / float64(e.cfg.TPS))
	}
	e.frame++
	return nil
}

// Draw implements ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	screen.Fill(e.background.RGBA())
	if e.current == nil {
		return
	}
	e.renderer.SetTarget(screen)
	e.current.Render(e.renderer)
}

// Layout implements ebiten.Game with a fixed logical screen size.
func (e *Engine) Layout(_, _ int) (int, int) {
	return e.cfg.Window.Width, e.cfg.Window.Height
}

// Run opens the window and blocks until the window is closed or Stop is
// called. The active scene is cleaned up and the logger flushed on return.
func (e *Engine) Run() error {
	ebiten.SetWindowTitle(e.cfg.Window.Title)
	ebiten.SetWindowSize(e.cfg.Window.Width, e.cfg.Window.Height)
	if e.cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(e.cfg.TPS)

	e.log.Info("engine starting",
		zap.String("title", e.cfg.Window.Title),
		zap.Int("width", e.cfg.Window.Width),
		zap.Int("height", e.cfg.Window.Height),
		zap.Int("tps", e.cfg.TPS))

	err := ebiten.RunGame(e)
	e.shutdown()
	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Stop ends the loop at the next Update.
func (e *Engine) Stop() {
	e.stopping = true
}

// FPS returns the measured frames per second.
func (e *Engine) FPS() float64 {
	return ebiten.ActualFPS()
}

func (e *Engine) shutdown() {
	if e.current != nil {
		e.current.Cleanup()
		e.current.engine = nil
		e.current = nil
	}
	e.log.Info("engine stopped", zap.Uint64("frames", e.frame))
	_ = e.log.Sync()
}
