package sapling

import (
	"sync"

	"go.uber.org/zap"
)

// Hierarchy is the lock domain for a tree (or forest) of transforms. Every
// Transform belongs to exactly one Hierarchy and can only be parented to
// transforms of the same Hierarchy.
//
// Derived world reads take the shared lock for the duration of the ancestor
// walk; reparenting and local mutations take the exclusive lock. A single lock
// per hierarchy is enough because trees are shallow.
type Hierarchy struct {
	mu    sync.RWMutex
	log   *zap.Logger
	debug bool
}

// NewHierarchy creates an empty hierarchy that logs nowhere.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{log: zap.NewNop()}
}

// SetLogger sets the logger used for debug warnings. A nil logger disables
// logging.
func (h *Hierarchy) SetLogger(log *zap.Logger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if log == nil {
		log = zap.NewNop()
	}
	h.log = log
}

// SetDebugMode enables tree depth and child count warnings on reparent.
func (h *Hierarchy) SetDebugMode(enabled bool) {
	h.mu.Lock()
	h.debug = enabled
	h.mu.Unlock()
}

// NewTransform creates a detached identity transform in h.
func (h *Hierarchy) NewTransform() *Transform {
	return &Transform{h: h, scale: One()}
}

// NewTransform creates a detached identity transform in its own private
// Hierarchy. Use Hierarchy.NewTransform for transforms that will be parented
// to each other.
func NewTransform() *Transform {
	return NewHierarchy().NewTransform()
}
