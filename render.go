package sapling

import (
	"time"

	"go.uber.org/zap"
)

// Render draws the scene. Top-level objects are visited in ascending ZOrder;
// objects with equal ZOrder keep insertion order. Each visible object draws
// its Renderable components in attachment order and then its children, which
// are ordered the same way among themselves. Objects are drawn through the
// scene's Camera when one is set. The OnRender hook runs last, on top of
// everything, with r itself.
//
// Render only reads object state. Destroyed objects that have not been swept
// yet are skipped.
func (s *Scene) Render(r Renderer) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	world := r
	if s.Camera != nil {
		world = s.Camera.Apply(r)
	}
	drawn := 0
	s.renderLevel(world, s.objects, 0, &drawn)
	s.releaseSortBufs()
	if s.OnRender != nil {
		s.OnRender(s, r)
	}

	if s.debug {
		s.log.Debug("render",
			zap.Duration("traverse", time.Since(t0)),
			zap.Int("objects", drawn))
	}
}

func (s *Scene) renderLevel(r Renderer, objs []*GameObject, depth int, drawn *int) {
	if len(objs) == 0 {
		return
	}
	for _, o := range s.sortedByZ(objs, depth) {
		if o.destroyed || !o.Visible {
			continue
		}
		for _, c := range o.components {
			if rc, ok := c.(Renderable); ok {
				rc.Render(r, o)
			}
		}
		*drawn++
		s.renderLevel(r, o.children, depth+1, drawn)
	}
}

// sortedByZ copies objs into the scratch buffer for depth and sorts it by
// ZOrder. A depth's buffer is only reused once iteration over it is done.
// Uses insertion sort: zero allocations, stable, and optimal for the typical
// case of few objects that are nearly sorted (O(n) when already sorted).
func (s *Scene) sortedByZ(objs []*GameObject, depth int) []*GameObject {
	for len(s.sortBufs) <= depth {
		s.sortBufs = append(s.sortBufs, nil)
	}
	buf := s.sortBufs[depth]
	n := len(objs)
	if cap(buf) < n {
		buf = make([]*GameObject, n)
	}
	clear(buf[n:cap(buf)])
	buf = buf[:n]
	copy(buf, objs)
	for i := 1; i < n; i++ {
		key := buf[i]
		j := i - 1
		for j >= 0 && buf[j].ZOrder > key.ZOrder {
			buf[j+1] = buf[j]
			j--
		}
		buf[j+1] = key
	}
	s.sortBufs[depth] = buf
	return buf
}

// releaseSortBufs drops the object pointers held by the scratch buffers so
// removed objects do not stay reachable between frames. Capacity is kept.
func (s *Scene) releaseSortBufs() {
	for i, buf := range s.sortBufs {
		clear(buf[:cap(buf)])
		s.sortBufs[i] = buf[:0]
	}
}
