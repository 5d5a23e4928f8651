package sapling

import (
	"math"
	"testing"
)

func TestVecReplacesNonFinite(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want Vec2
	}{
		{"finite", 1, 2, Vec2{1, 2}},
		{"nan x", math.NaN(), 2, Vec2{0, 2}},
		{"inf y", 1, math.Inf(-1), Vec2{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Vec(tt.x, tt.y); got != tt.want {
				t.Errorf("Vec(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
	if (Vec2{math.NaN(), 0}).IsFinite() {
		t.Error("IsFinite(NaN) = true")
	}
}

func TestVecArithmetic(t *testing.T) {
	a, b := Vec(3, 4), Vec(1, -2)
	assertVec(t, "Add", a.Add(b), Vec(4, 2))
	assertVec(t, "Sub", a.Sub(b), Vec(2, 6))
	assertVec(t, "Mul", a.Mul(b), Vec(3, -8))
	assertVec(t, "Scale", a.Scale(0.5), Vec(1.5, 2))
	assertNear(t, "Dot", a.Dot(b), -5)
	assertVec(t, "Lerp", a.Lerp(b, 0.5), Vec(2, 1))
	if a != Vec(3, 4) {
		t.Error("operations modified receiver")
	}
}

func TestVecMagnitudeNormalizeDistance(t *testing.T) {
	v := Vec(3, 4)
	assertNear(t, "Magnitude", v.Magnitude(), 5)
	assertVec(t, "Normalize", v.Normalize(), Vec(0.6, 0.8))
	assertNear(t, "unit length", v.Normalize().Magnitude(), 1)
	assertVec(t, "Normalize zero", Zero().Normalize(), Zero())
	assertNear(t, "DistanceTo", Vec(1, 1).DistanceTo(Vec(4, 5)), 5)
	assertNear(t, "DistanceTo symmetric", Vec(4, 5).DistanceTo(Vec(1, 1)), 5)
}

func TestVecRotateAndAngle(t *testing.T) {
	assertVec(t, "Rotate 90", Vec(1, 0).Rotate(math.Pi/2), Vec(0, 1))
	assertVec(t, "Rotate 180", Vec(1, 2).Rotate(math.Pi), Vec(-1, -2))
	assertNear(t, "Angle", Vec(0, 2).Angle(), math.Pi/2)
	assertVec(t, "FromAngle", FromAngle(math.Pi, 2), Vec(-2, 0))
	assertVec(t, "FromAngle NaN", FromAngle(math.NaN(), 2), Zero())
}

func TestNormalizeAngle(t *testing.T) {
	assertNear(t, "negative", NormalizeAngle(-math.Pi/2), 3*math.Pi/2)
	assertNear(t, "over 2π", NormalizeAngle(5*math.Pi/2), math.Pi/2)
	assertNear(t, "zero", NormalizeAngle(0), 0)

	if !AnglesEqual(0, 2*math.Pi, 1e-9) {
		t.Error("0 and 2π should be equal")
	}
	if !AnglesEqual(-1e-12, 1e-12, 1e-9) {
		t.Error("angles straddling zero should be equal")
	}
	if AnglesEqual(0, 0.1, 1e-9) {
		t.Error("0 and 0.1 should differ")
	}
}
