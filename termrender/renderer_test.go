package termrender

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/sapling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cell struct {
	ch    rune
	style tcell.Style
}

// fakeCanvas is an in-memory grid of cells.
type fakeCanvas struct {
	w, h  int
	cells map[[2]int]cell
}

func newFakeCanvas(w, h int) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, cells: make(map[[2]int]cell)}
}

func (c *fakeCanvas) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		panic("write outside canvas")
	}
	c.cells[[2]int{x, y}] = cell{primary, style}
}

func (c *fakeCanvas) Size() (int, int) { return c.w, c.h }

func (c *fakeCanvas) bg(x, y int) (tcell.Color, bool) {
	cl, ok := c.cells[[2]int{x, y}]
	if !ok {
		return tcell.ColorDefault, false
	}
	_, bg, _ := cl.style.Decompose()
	return bg, true
}

func TestCellOf(t *testing.T) {
	r := New(newFakeCanvas(10, 10), 10, 20)
	x, y := r.CellOf(sapling.Vec(25, 45))
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)

	x, y = r.CellOf(sapling.Vec(-1, -1))
	assert.Equal(t, -1, x)
	assert.Equal(t, -1, y)
}

func TestDrawRectFillsCoveredCells(t *testing.T) {
	c := newFakeCanvas(10, 10)
	r := New(c, 1, 1)
	red := sapling.RGB(255, 0, 0)

	r.DrawRect(sapling.Vec(5, 5), sapling.Vec(4, 2), 0, red)

	assert.Len(t, c.cells, 8)
	bg, ok := c.bg(3, 4)
	require.True(t, ok)
	assert.Equal(t, Color(red), bg)
	_, ok = c.bg(7, 4)
	assert.False(t, ok)
}

func TestDrawClipsToCanvas(t *testing.T) {
	c := newFakeCanvas(4, 4)
	r := New(c, 1, 1)

	assert.NotPanics(t, func() {
		r.DrawRect(sapling.Vec(0, 0), sapling.Vec(10, 10), 0.5, sapling.ColorWhite)
		r.DrawCircle(sapling.Vec(100, 100), 3, sapling.ColorWhite)
		r.DrawLine(sapling.Vec(-5, -5), sapling.Vec(10, 10), 1, sapling.ColorWhite)
		r.DrawText(sapling.Vec(0, 1), "hello world", sapling.ColorWhite)
		r.StrokeCircle(sapling.Vec(2, 2), 5, 1, sapling.ColorWhite)
	})
}

func TestDrawCircle(t *testing.T) {
	c := newFakeCanvas(20, 20)
	r := New(c, 1, 1)
	r.DrawCircle(sapling.Vec(10, 10), 3, sapling.ColorWhite)

	_, ok := c.bg(10, 10)
	assert.True(t, ok, "center painted")
	_, ok = c.bg(10, 7)
	assert.True(t, ok, "edge painted")
	_, ok = c.bg(7, 7)
	assert.False(t, ok, "corner outside")
}

func TestStrokeCircleLeavesCenter(t *testing.T) {
	c := newFakeCanvas(20, 20)
	r := New(c, 1, 1)
	r.StrokeCircle(sapling.Vec(10, 10), 5, 1, sapling.ColorWhite)

	_, ok := c.bg(10, 10)
	assert.False(t, ok)
	_, ok = c.bg(14, 10)
	assert.True(t, ok)
}

func TestDrawLine(t *testing.T) {
	c := newFakeCanvas(10, 10)
	r := New(c, 1, 1)
	r.DrawLine(sapling.Vec(0.5, 0.5), sapling.Vec(4.5, 4.5), 1, sapling.ColorWhite)

	for i := 0; i <= 4; i++ {
		_, ok := c.bg(i, i)
		assert.True(t, ok, "cell %d,%d", i, i)
	}
	assert.Len(t, c.cells, 5)
}

func TestDrawTextCentered(t *testing.T) {
	c := newFakeCanvas(10, 3)
	r := New(c, 1, 1)
	r.DrawText(sapling.Vec(5, 1), "abc", sapling.ColorWhite)

	assert.Equal(t, 'a', c.cells[[2]int{4, 1}].ch)
	assert.Equal(t, 'b', c.cells[[2]int{5, 1}].ch)
	assert.Equal(t, 'c', c.cells[[2]int{6, 1}].ch)
}

func TestTransparentFillSkipped(t *testing.T) {
	c := newFakeCanvas(4, 4)
	r := New(c, 1, 1)
	r.DrawRect(sapling.Vec(2, 2), sapling.Vec(2, 2), 0, sapling.Color{R: 1})
	assert.Empty(t, c.cells)
}

func TestClear(t *testing.T) {
	c := newFakeCanvas(3, 2)
	New(c, 1, 1).Clear(sapling.ColorBlack)
	assert.Len(t, c.cells, 6)
}

func TestRenderScene(t *testing.T) {
	c := newFakeCanvas(10, 10)
	r := New(c, 1, 1)

	s := sapling.NewScene("term")
	obj := s.NewObject("box")
	obj.SetPosition(sapling.Vec(5, 5))
	obj.AddComponent(sapling.NewSprite(sapling.RGB(0, 255, 0), sapling.Vec(2, 2)))

	s.Render(r)
	bg, ok := c.bg(5, 5)
	require.True(t, ok)
	assert.Equal(t, Color(sapling.RGB(0, 255, 0)), bg)
}
