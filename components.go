package sapling

// Sprite draws a solid shape at its owner's world pose.
type Sprite struct {
	Color  Color
	Size   Vec2  // width and height in local units; Size.X is the diameter for circles
	Shape  Shape
	Offset Vec2 // local offset from the owner's origin
}

// NewSprite returns a rectangle sprite of the given color and size.
func NewSprite(c Color, size Vec2) *Sprite {
	return &Sprite{Color: c, Size: size}
}

// NewCircleSprite returns a circle sprite of the given color and diameter.
func NewCircleSprite(c Color, diameter float64) *Sprite {
	return &Sprite{Color: c, Size: Vec2{diameter, diameter}, Shape: ShapeCircle}
}

// Render draws the sprite. Scale is applied from the owner's world scale.
func (s *Sprite) Render(r Renderer, obj *GameObject) {
	s.Draw(r, obj.Transform.WorldPose())
}

// Draw renders the sprite at an explicit world pose. Used by render passes
// that are not driven by a GameObject.
func (s *Sprite) Draw(r Renderer, pose Pose) {
	center := pose.Position
	if s.Offset != (Vec2{}) {
		center = center.Add(s.Offset.Mul(pose.Scale).Rotate(pose.Rotation))
	}
	size := s.Size.Mul(pose.Scale)
	switch s.Shape {
	case ShapeCircle:
		r.DrawCircle(center, size.X/2, s.Color)
	default:
		r.DrawRect(center, size, pose.Rotation, s.Color)
	}
}

// Label draws a line of text at its owner's world position.
type Label struct {
	Text   string
	Color  Color
	Offset Vec2
}

// NewLabel returns a white label.
func NewLabel(text string) *Label {
	return &Label{Text: text, Color: ColorWhite}
}

// Render draws the label. Text is never rotated or scaled.
func (l *Label) Render(r Renderer, obj *GameObject) {
	if l.Text == "" {
		return
	}
	r.DrawText(obj.Transform.WorldPosition().Add(l.Offset), l.Text, l.Color)
}
