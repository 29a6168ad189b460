// Package geo contains the fundamental geometric types used throughout the router.
package geo

import "math"

// Epsilon is the tolerance used for coordinate equality throughout the library.
const Epsilon = 1e-7

// Point represents a 2D coordinate. Y grows downward, matching screen space.
type Point struct {
	X, Y float64
}

// Eq reports whether two points coincide within Epsilon.
func (p Point) Eq(q Point) bool {
	return math.Abs(p.X-q.X) < Epsilon && math.Abs(p.Y-q.Y) < Epsilon
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(a, b Point) float64 {
	return math.Abs(b.X-a.X) + math.Abs(b.Y-a.Y)
}

// SquaredDistance calculates the squared Euclidean distance between two points.
func SquaredDistance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// Direction represents a cardinal direction.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// DirectionBetween classifies the axis-aligned direction of travel from a to b.
// The dominant axis wins for near-diagonal inputs, but graph edges are always
// strictly axis-aligned so the classification is exact in practice.
func DirectionBetween(a, b Point) Direction {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return East
		}
		return West
	}
	if dy >= 0 {
		return South
	}
	return North
}

// Rect represents an axis-aligned rectangle given as top-left corner + dimensions.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p lies inside the rectangle or on its boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left()-Epsilon && p.X <= r.Right()+Epsilon &&
		p.Y >= r.Top()-Epsilon && p.Y <= r.Bottom()+Epsilon
}

// ContainsInterior reports whether p lies strictly inside the rectangle,
// boundary excluded.
func (r Rect) ContainsInterior(p Point) bool {
	return p.X > r.Left()+Epsilon && p.X < r.Right()-Epsilon &&
		p.Y > r.Top()+Epsilon && p.Y < r.Bottom()-Epsilon
}

// Inflate returns the rectangle grown by margin on every side.
func (r Rect) Inflate(margin float64) Rect {
	return Rect{
		X: r.X - margin,
		Y: r.Y - margin,
		W: r.W + 2*margin,
		H: r.H + 2*margin,
	}
}

// SegmentIntersection computes the intersection of segments p1-p2 and p3-p4
// by the standard parametric method. It reports false for zero-length
// segments, parallel lines, or an intersection that falls outside either
// segment's [0,1] parameter range.
func SegmentIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	if p1.Eq(p2) || p3.Eq(p4) {
		return Point{}, false
	}

	det := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if math.Abs(det) < Epsilon {
		return Point{}, false
	}

	ua := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / det
	ub := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / det
	if ua < -Epsilon || ua > 1+Epsilon || ub < -Epsilon || ub > 1+Epsilon {
		return Point{}, false
	}

	return Point{
		X: p1.X + ua*(p2.X-p1.X),
		Y: p1.Y + ua*(p2.Y-p1.Y),
	}, true
}
