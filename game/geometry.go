package game

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Point is a position in screen coordinates.
type Point = dmath.Vec2

// Box is an axis-aligned rectangle given by its edges.
type Box struct {
	Top, Bottom, Left, Right float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// Circle is used for round-body overlap checks.
type Circle struct {
	Center Point
	Radius float64
}

// PointInBox reports whether (x, y) lies inside box. Both axes are checked
// independently and the edges count as inside.
func PointInBox(x, y float64, box Box) bool {
	inX := bounded(x, box.Left, box.Right)
	inY := bounded(y, box.Top, box.Bottom)
	return inX && inY
}

// CirclesOverlap reports whether the distance between the centers is strictly
// less than the sum of the radii. Touching circles do not overlap.
func CirclesOverlap(a, b Circle) bool {
	return Distance(a.Center, b.Center) < a.Radius+b.Radius
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func bounded(n, lo, hi float64) bool {
	return n >= lo && n <= hi
}

// Clamp restricts n to [lo, hi].
func Clamp(n, lo, hi float64) float64 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
