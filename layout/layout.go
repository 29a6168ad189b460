// Package layout bridges the output of an external placement engine into
// router input. Placement (force simulation, collision avoidance) happens
// elsewhere and hands over final positions and sizes; this package derives
// obstacle rectangles, connector anchors, and the working area from them.
package layout

import (
	"ortho/geo"
	"ortho/router"
)

// TableNode is one routed entity inside a table: a single-column band with
// a position and size assigned by the placement engine.
type TableNode struct {
	ID         string
	X, Y, W, H float64
}

// Rect returns the node's bounding rectangle.
func (n TableNode) Rect() geo.Rect {
	return geo.Rect{X: n.X, Y: n.Y, W: n.W, H: n.H}
}

// Table is a diagram entity containing nodes, positioned and sized by the
// placement engine.
type Table struct {
	ID         string
	X, Y, W, H float64
	Nodes      []TableNode
}

// Rect returns the table's bounding rectangle.
func (t Table) Rect() geo.Rect {
	return geo.Rect{X: t.X, Y: t.Y, W: t.W, H: t.H}
}

// Obstacle returns the table's bounding rectangle inflated by margin as a
// router obstacle, corners in clockwise order from top-left.
func Obstacle(t Table, margin float64) router.Obstacle {
	return router.ObstacleFromRect(t.Rect().Inflate(margin))
}

// Obstacles converts every table with Obstacle.
func Obstacles(tables []Table, margin float64) []router.Obstacle {
	out := make([]router.Obstacle, len(tables))
	for i, t := range tables {
		out[i] = Obstacle(t, margin)
	}
	return out
}

// FacingSide picks the side of table t that faces table other: East when
// other's center lies to the right, West otherwise. Node rows are
// horizontal bands, so anchors only ever sit on the vertical sides.
func FacingSide(t, other Table) geo.Direction {
	tc := t.X + t.W/2
	oc := other.X + other.W/2
	if oc >= tc {
		return geo.East
	}
	return geo.West
}

// Anchor derives the connector point for a node: on the table's inflated
// boundary at the node's vertical center, on the given side. The anchor is
// horizontal-only, since a node's band must be approached from the side.
func Anchor(t Table, n TableNode, side geo.Direction, margin float64) router.Connector {
	r := t.Rect().Inflate(margin)
	x := r.Left()
	if side == geo.East {
		x = r.Right()
	}
	return router.Connector{
		X:              x,
		Y:              n.Y + n.H/2,
		HorizontalOnly: true,
	}
}

// WorkingArea computes the bounding working area for a whole layout: the
// union of all table rectangles inflated by margin. Rays cast during graph
// construction are clipped to this area.
func WorkingArea(tables []Table, margin float64) geo.Rect {
	if len(tables) == 0 {
		return geo.Rect{}
	}
	r := tables[0].Rect()
	minX, minY := r.Left(), r.Top()
	maxX, maxY := r.Right(), r.Bottom()
	for _, t := range tables[1:] {
		r = t.Rect()
		if r.Left() < minX {
			minX = r.Left()
		}
		if r.Top() < minY {
			minY = r.Top()
		}
		if r.Right() > maxX {
			maxX = r.Right()
		}
		if r.Bottom() > maxY {
			maxY = r.Bottom()
		}
	}
	return geo.Rect{
		X: minX - margin,
		Y: minY - margin,
		W: (maxX - minX) + 2*margin,
		H: (maxY - minY) + 2*margin,
	}
}
