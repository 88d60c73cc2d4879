package vmath

import "math"

// Point is a position in screen pixels, y growing downward
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point          { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point          { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(f float64) Point      { return Point{p.X * f, p.Y * f} }
func (p Point) Equal(q Point) bool         { return p.X == q.X && p.Y == q.Y }
func (p Point) Magnitude() float64         { return math.Hypot(p.X, p.Y) }
func (p Point) DistanceTo(q Point) float64 { return Distance(p, q) }

// Distance returns the Euclidean distance between a and b
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Angle returns atan2(dy, dx) of p measured from origin in screen space
// A zero-length vector has angle 0 by convention
func Angle(origin, p Point) float64 {
	dx := p.X - origin.X
	dy := p.Y - origin.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, dx)
}

// FromPolar returns origin + r·(cos a, sin a)
func FromPolar(origin Point, r, a float64) Point {
	return Point{
		X: origin.X + r*math.Cos(a),
		Y: origin.Y + r*math.Sin(a),
	}
}

// FromBearing places a point at distance r from origin using a compass bearing:
// 0 points up (north) and angles grow clockwise
func FromBearing(origin Point, r, bearing float64) Point {
	return Point{
		X: origin.X + r*math.Sin(bearing),
		Y: origin.Y - r*math.Cos(bearing),
	}
}

// Rotate turns p about origin so that its screen angle decreases by delta
// Distance from origin is preserved
func Rotate(origin, p Point, delta float64) Point {
	return FromPolar(origin, Distance(origin, p), Angle(origin, p)-delta)
}

// WrapAngle maps any angle in radians onto (-π, π]
func WrapAngle(a float64) float64 {
	w := math.Mod(a+math.Pi, 2*math.Pi)
	if w <= 0 {
		w += 2 * math.Pi
	}
	return w - math.Pi
}

// AngleBetween returns the signed difference to-from wrapped onto (-π, π]
func AngleBetween(from, to float64) float64 {
	return WrapAngle(to - from)
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
