package spotrod

import (
	"fmt"
	"math"
)

// Point is a position in the sky plane, in units of the stellar radius, with
// the stellar disk centered at the origin.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) Splat() (float64, float64) {
	return pt.X, pt.Y
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Hypot returns the distance from the stellar center.
func (pt Point) Hypot() float64 {
	return math.Hypot(pt.X, pt.Y)
}

// Angle returns the position angle of the point as seen from the stellar
// center, atan2(y, x). The origin has angle 0.
func (pt Point) Angle() float64 {
	return math.Atan2(pt.Y, pt.X)
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// angularSeparation returns the angle between two position angles, folded
// into [0, π].
func angularSeparation(a, b float64) float64 {
	d := math.Abs(math.Remainder(a-b, 2*math.Pi))
	return min(d, math.Pi)
}
