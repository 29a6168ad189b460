package router

import (
	"sort"

	"ortho/geo"
)

// none marks an empty neighbour slot in a node's adjacency.
const none int32 = -1

// Node is a vertex of the orthogonal visibility graph. Nodes live in the
// graph's arena and reference their up-to-four axis-aligned neighbours by
// arena index, one fixed slot per cardinal direction.
type Node struct {
	P              geo.Point
	Neighbors      [4]int32 // indexed by geo.Direction; none when absent
	Connector      bool     // originally supplied as a link endpoint
	HorizontalOnly bool     // never grows a north/south neighbour
	VerticalOnly   bool     // never grows an east/west neighbour
}

// Segment is an axis-aligned free-travel line between two directly adjacent
// graph nodes. Segment lists are split in place as intersections are found,
// so a stored segment's endpoints are always immediate neighbours.
type Segment struct {
	A, B int32
}

// Obstacle is an opaque axis-aligned rectangle given by its four corners.
// Routing may touch its boundary but never cross its interior.
type Obstacle struct {
	TL, TR, BL, BR geo.Point
}

// ObstacleFromRect builds an obstacle from a rectangle, corners in clockwise
// order from top-left.
func ObstacleFromRect(r geo.Rect) Obstacle {
	return Obstacle{
		TL: geo.Point{X: r.Left(), Y: r.Top()},
		TR: geo.Point{X: r.Right(), Y: r.Top()},
		BL: geo.Point{X: r.Left(), Y: r.Bottom()},
		BR: geo.Point{X: r.Right(), Y: r.Bottom()},
	}
}

// Rect returns the obstacle's bounding rectangle.
func (o Obstacle) Rect() geo.Rect {
	return geo.Rect{
		X: o.TL.X,
		Y: o.TL.Y,
		W: o.TR.X - o.TL.X,
		H: o.BL.Y - o.TL.Y,
	}
}

// Connector describes a link endpoint supplied by the caller. The
// orientation flags suppress visibility rays on the perpendicular axis,
// used for anchors that must be approached from the side.
type Connector struct {
	X, Y           float64
	HorizontalOnly bool
	VerticalOnly   bool
}

// Graph is the orthogonal visibility graph: an arena of nodes plus the
// horizontal and vertical free segments connecting them.
type Graph struct {
	Nodes []Node
	H     []Segment // horizontal segments
	V     []Segment // vertical segments
	POI   []int32   // points of interest: connectors + obstacle corners
	OVG   []int32   // nodes created purely by segment intersection
}

// At returns the position of node i.
func (g *Graph) At(i int32) geo.Point {
	return g.Nodes[i].P
}

// add allocates a new node at p and returns its index.
func (g *Graph) add(p geo.Point) int32 {
	g.Nodes = append(g.Nodes, Node{
		P:         p,
		Neighbors: [4]int32{none, none, none, none},
	})
	return int32(len(g.Nodes) - 1)
}

// find returns the index of an existing node coinciding with p, or none.
func (g *Graph) find(p geo.Point) int32 {
	for i := range g.Nodes {
		if g.Nodes[i].P.Eq(p) {
			return int32(i)
		}
	}
	return none
}

// link wires a and b as neighbours with b in direction d from a. Occupied
// slots are never overwritten; the link is made only when both sides are
// free, keeping adjacency symmetric. Reports whether a new link was made,
// so callers recording segments skip edges that already exist.
func (g *Graph) link(a, b int32, d geo.Direction) bool {
	if g.Nodes[a].Neighbors[d] != none || g.Nodes[b].Neighbors[d.Opposite()] != none {
		return false
	}
	g.Nodes[a].Neighbors[d] = b
	g.Nodes[b].Neighbors[d.Opposite()] = a
	return true
}

// buildGraph constructs the visibility graph for the given connector points
// and obstacles, with rays clipped to area. Output is deterministic for
// identical input: all scans run in input order over slices, never maps.
func buildGraph(connectors []Connector, obstacles []Obstacle, area geo.Rect) *Graph {
	g := &Graph{}

	for _, c := range connectors {
		i := g.add(geo.Point{X: c.X, Y: c.Y})
		g.Nodes[i].Connector = true
		g.Nodes[i].HorizontalOnly = c.HorizontalOnly
		g.Nodes[i].VerticalOnly = c.VerticalOnly
		g.POI = append(g.POI, i)
	}

	for _, o := range obstacles {
		g.addObstacle(o)
	}

	// Cast rays from every point of interest that is still missing a
	// directional neighbour. The POI list may not grow here: ray terminals
	// are plain graph nodes, not sources of further rays.
	for _, i := range g.POI {
		for _, d := range []geo.Direction{geo.North, geo.East, geo.South, geo.West} {
			g.castRay(i, d, obstacles, area)
		}
	}

	return g
}

// addObstacle wires the obstacle's four corners into a closed rectangle and
// records its boundary edges as known-free segments. Corners coinciding with
// existing nodes are reused so that touching obstacles share graph nodes; a
// fresh corner landing inside an existing segment is spliced into that line,
// and boundary edges chain through any nodes already lying on them, so
// partially overlapping boundaries share one consistent adjacency chain.
func (g *Graph) addObstacle(o Obstacle) {
	corner := func(p geo.Point) int32 {
		if i := g.find(p); i != none {
			return i
		}
		i := g.add(p)
		g.POI = append(g.POI, i)
		g.spliceInto(i)
		return i
	}

	tl := corner(o.TL)
	tr := corner(o.TR)
	bl := corner(o.BL)
	br := corner(o.BR)

	g.edge(tl, tr, geo.East)
	g.edge(bl, br, geo.East)
	g.edge(tl, bl, geo.South)
	g.edge(tr, br, geo.South)
}

// edge records the boundary line from a to b, with b in direction d from a.
// Nodes already lying strictly between the endpoints are chained through
// rather than skipped, so collinear boundaries never produce overlapping
// segments. Nodes whose orientation flags exclude the line's axis are
// passed over.
func (g *Graph) edge(a, b int32, d geo.Direction) {
	vertical := d == geo.South
	pa, pb := g.At(a), g.At(b)

	chain := []int32{a, b}
	for j := range g.Nodes {
		q := g.Nodes[j].P
		if vertical {
			if g.Nodes[j].HorizontalOnly {
				continue
			}
			if approxEq(q.X, pa.X) && q.Y > pa.Y+geo.Epsilon && q.Y < pb.Y-geo.Epsilon {
				chain = append(chain, int32(j))
			}
		} else {
			if g.Nodes[j].VerticalOnly {
				continue
			}
			if approxEq(q.Y, pa.Y) && q.X > pa.X+geo.Epsilon && q.X < pb.X-geo.Epsilon {
				chain = append(chain, int32(j))
			}
		}
	}
	sort.Slice(chain, func(x, y int) bool {
		if vertical {
			return g.At(chain[x]).Y < g.At(chain[y]).Y
		}
		return g.At(chain[x]).X < g.At(chain[y]).X
	})

	for k := 0; k+1 < len(chain); k++ {
		if !g.link(chain[k], chain[k+1], d) {
			continue
		}
		if vertical {
			g.V = append(g.V, Segment{A: chain[k], B: chain[k+1]})
		} else {
			g.H = append(g.H, Segment{A: chain[k], B: chain[k+1]})
		}
	}
}

// spliceInto wires node n into any existing segment its position falls
// strictly inside, splitting that segment around it.
func (g *Graph) spliceInto(n int32) {
	p := g.At(n)
	for i := range g.H {
		a, b := g.At(g.H[i].A), g.At(g.H[i].B)
		if approxEq(p.Y, a.Y) && strictlyBetween(p.X, a.X, b.X) {
			g.spliceH(i, n)
			break
		}
	}
	for j := range g.V {
		a, b := g.At(g.V[j].A), g.At(g.V[j].B)
		if approxEq(p.X, a.X) && strictlyBetween(p.Y, a.Y, b.Y) {
			g.spliceV(j, n)
			break
		}
	}
}

func strictlyBetween(v, a, b float64) bool {
	lo, hi := min(a, b), max(a, b)
	return v > lo+geo.Epsilon && v < hi-geo.Epsilon
}

// castRay extends a visibility ray from node i in direction d, clipped by
// area and shrunk to the nearest blocking obstacle edge, then links a
// terminal node at the result. Obstacles are scanned in input order with a
// strict comparison, so when two edges block at exactly the same distance
// the first obstacle wins.
//
// Rays also stop at the nearest point of interest lying on their path, so a
// line shared by several POIs is chained through them instead of producing
// overlapping collinear segments the intersection pass cannot see. A POI
// whose orientation flags exclude the ray's axis is passed over: it will
// never accept a neighbour on that axis.
func (g *Graph) castRay(i int32, d geo.Direction, obstacles []Obstacle, area geo.Rect) {
	n := &g.Nodes[i]
	if n.Neighbors[d] != none {
		return
	}
	if n.HorizontalOnly && (d == geo.North || d == geo.South) {
		return
	}
	if n.VerticalOnly && (d == geo.East || d == geo.West) {
		return
	}

	p := n.P
	vertical := d == geo.North || d == geo.South

	var limit float64
	switch d {
	case geo.North:
		limit = area.Top()
		for _, o := range obstacles {
			r := o.Rect()
			if r.Contains(geo.Point{X: p.X, Y: r.Bottom()}) &&
				r.Bottom() < p.Y+geo.Epsilon && r.Bottom() > limit {
				limit = r.Bottom()
			}
		}
	case geo.South:
		limit = area.Bottom()
		for _, o := range obstacles {
			r := o.Rect()
			if r.Contains(geo.Point{X: p.X, Y: r.Top()}) &&
				r.Top() > p.Y-geo.Epsilon && r.Top() < limit {
				limit = r.Top()
			}
		}
	case geo.East:
		limit = area.Right()
		for _, o := range obstacles {
			r := o.Rect()
			if r.Contains(geo.Point{X: r.Left(), Y: p.Y}) &&
				r.Left() > p.X-geo.Epsilon && r.Left() < limit {
				limit = r.Left()
			}
		}
	case geo.West:
		limit = area.Left()
		for _, o := range obstacles {
			r := o.Rect()
			if r.Contains(geo.Point{X: r.Right(), Y: p.Y}) &&
				r.Right() < p.X+geo.Epsilon && r.Right() > limit {
				limit = r.Right()
			}
		}
	}

	for _, j := range g.POI {
		if j == i {
			continue
		}
		q := g.Nodes[j].P
		if vertical && g.Nodes[j].HorizontalOnly {
			continue
		}
		if !vertical && g.Nodes[j].VerticalOnly {
			continue
		}
		switch d {
		case geo.North:
			if approxEq(q.X, p.X) && q.Y < p.Y-geo.Epsilon && q.Y > limit {
				limit = q.Y
			}
		case geo.South:
			if approxEq(q.X, p.X) && q.Y > p.Y+geo.Epsilon && q.Y < limit {
				limit = q.Y
			}
		case geo.East:
			if approxEq(q.Y, p.Y) && q.X > p.X+geo.Epsilon && q.X < limit {
				limit = q.X
			}
		case geo.West:
			if approxEq(q.Y, p.Y) && q.X < p.X-geo.Epsilon && q.X > limit {
				limit = q.X
			}
		}
	}

	var terminal geo.Point
	if vertical {
		terminal = geo.Point{X: p.X, Y: limit}
	} else {
		terminal = geo.Point{X: limit, Y: p.Y}
	}
	if terminal.Eq(p) {
		return // point sits on the blocking edge, zero-length ray
	}

	// Reuse a coincident node when its flags allow this axis, otherwise
	// allocate a fresh terminal; the intersection pass connects the rest.
	t := none
	for idx := range g.Nodes {
		node := &g.Nodes[idx]
		if !node.P.Eq(terminal) {
			continue
		}
		if vertical && node.HorizontalOnly {
			continue
		}
		if !vertical && node.VerticalOnly {
			continue
		}
		t = int32(idx)
		break
	}
	if t == none {
		t = g.add(terminal)
	}

	// A reused terminal may already carry adjacency on this line. Chain
	// toward the origin through any neighbour lying between them; a
	// coincident duplicate node is never allocated.
	for {
		m := g.Nodes[t].Neighbors[d.Opposite()]
		if m == i {
			return // already linked
		}
		if m == none || !ahead(p, g.At(m), d) {
			break
		}
		t = m
	}
	if !g.link(i, t, d) {
		return
	}

	if vertical {
		g.V = append(g.V, Segment{A: i, B: t})
	} else {
		g.H = append(g.H, Segment{A: i, B: t})
	}
}

func approxEq(a, b float64) bool {
	return a-b < geo.Epsilon && b-a < geo.Epsilon
}

// ahead reports whether q lies strictly beyond p in direction d.
func ahead(p, q geo.Point, d geo.Direction) bool {
	switch d {
	case geo.North:
		return q.Y < p.Y-geo.Epsilon
	case geo.South:
		return q.Y > p.Y+geo.Epsilon
	case geo.East:
		return q.X > p.X+geo.Epsilon
	default:
		return q.X < p.X-geo.Epsilon
	}
}
