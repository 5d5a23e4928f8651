package sapling

import "math"

// Vec2 is a 2D vector used for positions, offsets, sizes, scales and
// directions throughout the API. It is a value type: every operation returns
// a new Vec2 and never modifies its receiver.
type Vec2 struct {
	X, Y float64
}

// Vec returns the vector (x, y). Non-finite components are replaced with 0.
func Vec(x, y float64) Vec2 {
	return Vec2{finiteOrZero(x), finiteOrZero(y)}
}

// Zero returns the zero vector.
func Zero() Vec2 { return Vec2{} }

// One returns the vector (1, 1), the identity scale.
func One() Vec2 { return Vec2{1, 1} }

// FromAngle returns a vector of the given magnitude pointing along angle
// (radians, measured from +X towards +Y). Non-finite inputs yield Zero.
func FromAngle(angle, magnitude float64) Vec2 {
	if !isFinite(angle) || !isFinite(magnitude) {
		return Vec2{}
	}
	sin, cos := math.Sincos(angle)
	return Vec2{cos * magnitude, sin * magnitude}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Rotate returns v rotated by angle radians around the origin.
func (v Vec2) Rotate(angle float64) Vec2 {
	if angle == 0 {
		return v
	}
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Magnitude returns the Euclidean length of v.
func (v Vec2) Magnitude() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{v.X / m, v.Y / m}
}

// DistanceTo returns the Euclidean distance between v and o.
func (v Vec2) DistanceTo(o Vec2) float64 { return o.Sub(v).Magnitude() }

// Lerp linearly interpolates from v to o by t.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// IsFinite reports whether both components are finite.
func (v Vec2) IsFinite() bool { return isFinite(v.X) && isFinite(v.Y) }

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AnglesEqual reports whether a and b describe the same direction within eps,
// treating angles that differ by a multiple of 2π as equal.
func AnglesEqual(a, b, eps float64) bool {
	d := NormalizeAngle(a - b)
	return d <= eps || 2*math.Pi-d <= eps
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func finiteOrZero(f float64) float64 {
	if !isFinite(f) {
		return 0
	}
	return f
}
