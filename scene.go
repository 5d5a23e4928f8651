package sapling

import (
	"go.uber.org/zap"
)

// Scene is the top-level container of GameObjects. It owns the transform
// hierarchy its objects are created in, the update and render passes, and
// the lifecycle hooks an Engine calls when switching scenes.
//
// A Scene is not safe for concurrent use; the engine loop drives it from a
// single goroutine.
type Scene struct {
	Name string

	// Lifecycle hooks (nil by default).
	OnInitialize func(s *Scene)
	OnCleanup    func(s *Scene)
	OnUpdate     func(s *Scene, dt float64)
	OnRender     func(s *Scene, r Renderer)

	// Camera, when set, maps world coordinates to the screen for every
	// object. The OnRender hook draws in screen space.
	Camera *Camera

	hierarchy *Hierarchy
	log       *zap.Logger
	debug     bool
	engine    *Engine

	objects  []*GameObject
	pending  []*GameObject
	sortBufs [][]*GameObject // per-depth ZOrder traversal buffers

	initialized bool
}

// NewScene creates an empty scene with its own hierarchy.
func NewScene(name string) *Scene {
	return &Scene{
		Name:      name,
		hierarchy: NewHierarchy(),
		log:       zap.NewNop(),
	}
}

// Hierarchy returns the hierarchy objects created by NewObject live in.
func (s *Scene) Hierarchy() *Hierarchy {
	return s.hierarchy
}

// Engine returns the engine running the scene, or nil.
func (s *Scene) Engine() *Engine {
	return s.engine
}

// SetLogger sets the scene's logger. A nil logger disables logging.
func (s *Scene) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	s.log = log.With(zap.String("scene", s.Name))
	s.hierarchy.SetLogger(s.log)
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *zap.Logger {
	return s.log
}

// SetDebugMode enables hierarchy warnings and per-frame render timing logs.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.hierarchy.SetDebugMode(enabled)
}

// --- Objects ---

// NewObject creates an object in the scene's hierarchy and adds it.
func (s *Scene) NewObject(name string) *GameObject {
	o := NewGameObject(name, s.hierarchy)
	s.Add(o)
	return o
}

// Add appends obj to the scene's top level. An object that already has a
// parent object is detached from it first.
func (s *Scene) Add(obj *GameObject) {
	if obj == nil {
		panic("sapling: cannot add nil object")
	}
	if obj.destroyed {
		s.log.Warn("ignoring destroyed object", zap.String("object", obj.Name), zap.Uint32("id", obj.ID))
		return
	}
	switch {
	case obj.parent != nil:
		obj.parent.RemoveChild(obj)
	case obj.scene == s:
		return
	case obj.scene != nil:
		obj.scene.removeTop(obj)
	}
	s.objects = append(s.objects, obj)
	obj.setScene(s)
}

// Remove detaches a top-level object from the scene without destroying it.
func (s *Scene) Remove(obj *GameObject) bool {
	if obj == nil || obj.scene != s || obj.parent != nil {
		return false
	}
	if !s.removeTop(obj) {
		return false
	}
	obj.setScene(nil)
	return true
}

// Objects returns a snapshot of the top-level objects in insertion order.
func (s *Scene) Objects() []*GameObject {
	out := make([]*GameObject, len(s.objects))
	copy(out, s.objects)
	return out
}

// Len returns the number of top-level objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// FindObject returns the first live object named name, searching depth-first
// in insertion order, or nil.
func (s *Scene) FindObject(name string) *GameObject {
	var found *GameObject
	s.walk(func(o *GameObject) bool {
		if o.Name == name {
			found = o
			return false
		}
		return true
	})
	return found
}

// FindByTag returns every live object with the given tag, depth-first.
func (s *Scene) FindByTag(tag string) []*GameObject {
	var out []*GameObject
	s.walk(func(o *GameObject) bool {
		if o.Tag == tag {
			out = append(out, o)
		}
		return true
	})
	return out
}

// walk visits live objects depth-first until fn returns false.
func (s *Scene) walk(fn func(*GameObject) bool) {
	var visit func([]*GameObject) bool
	visit = func(objs []*GameObject) bool {
		for _, o := range objs {
			if o.destroyed {
				continue
			}
			if !fn(o) || !visit(o.children) {
				return false
			}
		}
		return true
	}
	visit(s.objects)
}

// --- Update ---

// Update advances every live object by dt seconds: Updater components in
// attachment order, then the object's OnUpdate, then its children. The
// scene's OnUpdate runs next, then the camera. Objects destroyed during the
// pass are removed at the end of it.
func (s *Scene) Update(dt float64) {
	objs := s.Objects()
	for _, o := range objs {
		s.updateObject(o, dt)
	}
	if s.OnUpdate != nil {
		s.OnUpdate(s, dt)
	}
	if s.Camera != nil {
		s.Camera.Update(dt)
	}
	s.sweep()
}

func (s *Scene) updateObject(o *GameObject, dt float64) {
	if o.destroyed {
		return
	}
	for _, c := range o.components {
		if u, ok := c.(Updater); ok {
			u.Update(o, dt)
		}
	}
	if o.OnUpdate != nil && !o.destroyed {
		o.OnUpdate(o, dt)
	}
	if len(o.children) == 0 {
		return
	}
	children := make([]*GameObject, len(o.children))
	copy(children, o.children)
	for _, c := range children {
		s.updateObject(c, dt)
	}
}

// sweep unlinks objects destroyed since the last sweep. Children of a
// destroyed object are promoted to the top level.
func (s *Scene) sweep() {
	for len(s.pending) > 0 {
		pending := s.pending
		s.pending = nil
		for _, o := range pending {
			if o.scene != s {
				o.finalize(nil)
				continue
			}
			if o.parent == nil {
				s.removeTop(o)
			}
			o.finalize(func(c *GameObject) {
				s.objects = append(s.objects, c)
			})
			if s.debug {
				s.log.Debug("object removed", zap.String("object", o.Name), zap.Uint32("id", o.ID))
			}
		}
	}
}

// --- Lifecycle ---

// Initialize runs the OnInitialize hook. Called by Engine when the scene
// becomes active.
func (s *Scene) Initialize() {
	s.log.Debug("scene initialize")
	if s.OnInitialize != nil {
		s.OnInitialize(s)
	}
	s.initialized = true
}

// Cleanup runs the OnCleanup hook, then destroys every object in the scene
// and empties it. The scene can be initialized again afterwards.
func (s *Scene) Cleanup() {
	s.log.Debug("scene cleanup", zap.Int("objects", len(s.objects)))
	if s.OnCleanup != nil {
		s.OnCleanup(s)
	}
	var destroy func(o *GameObject)
	destroy = func(o *GameObject) {
		for _, c := range o.children {
			destroy(c)
		}
		o.destroyed = true
		o.children = nil
		o.parent = nil
		o.scene = nil
		o.Transform.Destroy()
	}
	for i, o := range s.objects {
		destroy(o)
		s.objects[i] = nil
	}
	s.objects = s.objects[:0]
	s.pending = nil
	s.initialized = false
}

// IsInitialized reports whether Initialize has run since the last Cleanup.
func (s *Scene) IsInitialized() bool {
	return s.initialized
}

// removeTop removes obj from the top-level list. Returns false if absent.
func (s *Scene) removeTop(obj *GameObject) bool {
	for i, o := range s.objects {
		if o == obj {
			copy(s.objects[i:], s.objects[i+1:])
			s.objects[len(s.objects)-1] = nil
			s.objects = s.objects[:len(s.objects)-1]
			return true
		}
	}
	return false
}
