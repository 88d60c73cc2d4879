package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapAngleRange(t *testing.T) {
	for a := -20.0; a <= 20.0; a += 0.0137 {
		w := WrapAngle(a)
		if w <= -math.Pi || w > math.Pi {
			t.Fatalf("WrapAngle(%f) = %f outside (-π, π]", a, w)
		}
	}
}

func TestWrapAngleBoundaries(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"pi stays pi", math.Pi, math.Pi},
		{"minus pi maps to pi", -math.Pi, math.Pi},
		{"just past pi", math.Pi + 0.1, -math.Pi + 0.1},
		{"just under minus pi", -math.Pi - 0.1, math.Pi - 0.1},
		{"full turn", 2 * math.Pi, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WrapAngle(tt.in), 1e-12)
		})
	}
}

func TestWrapAnglePeriodic(t *testing.T) {
	for _, a := range []float64{-3, -1.2, 0, 0.5, 2.9, math.Pi / 3} {
		for k := -5; k <= 5; k++ {
			shifted := a + 2*math.Pi*float64(k)
			assert.InDelta(t, WrapAngle(a), WrapAngle(shifted), 1e-9, "a=%f k=%d", a, k)
		}
	}
}

func TestAngleZeroVector(t *testing.T) {
	o := Pt(100, 100)
	assert.Equal(t, 0.0, Angle(o, o))
}

func TestAngleScreenSpace(t *testing.T) {
	o := Pt(0, 0)
	assert.InDelta(t, 0, Angle(o, Pt(5, 0)), 1e-12)
	// y grows downward, so a point below the origin has angle +π/2
	assert.InDelta(t, math.Pi/2, Angle(o, Pt(0, 5)), 1e-12)
	assert.InDelta(t, -math.Pi/2, Angle(o, Pt(0, -5)), 1e-12)
}

func TestFromBearingNorthClockwise(t *testing.T) {
	c := Pt(400, 300)

	up := FromBearing(c, 100, 0)
	assert.InDelta(t, 400, up.X, 1e-9)
	assert.InDelta(t, 200, up.Y, 1e-9)

	right := FromBearing(c, 100, math.Pi/2)
	assert.InDelta(t, 500, right.X, 1e-9)
	assert.InDelta(t, 300, right.Y, 1e-9)
}

func TestRotatePreservesDistance(t *testing.T) {
	o := Pt(10, 10)
	p := Pt(40, -30)
	r := Rotate(o, p, Radians(30))

	assert.InDelta(t, Distance(o, p), Distance(o, r), 1e-9)
	assert.InDelta(t, Angle(o, p)-Radians(30), Angle(o, r), 1e-9)
}

func TestDegreeRadianRoundTrip(t *testing.T) {
	for _, d := range []float64{-180, -45, 0, 8.5, 30, 100, 360} {
		assert.InDelta(t, d, Degrees(Radians(d)), 1e-9)
	}
	assert.InDelta(t, math.Pi, Radians(180), 1e-15)
}

func TestAngleBetween(t *testing.T) {
	assert.InDelta(t, Radians(20), AngleBetween(Radians(170), Radians(-170)), 1e-9)
	assert.InDelta(t, Radians(-20), AngleBetween(Radians(-170), Radians(170)), 1e-9)
}
