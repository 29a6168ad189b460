package router

import (
	"ortho/geo"
)

// intersect crosses every horizontal segment against every vertical segment
// and splices a shared graph node into both wherever they meet. Segment
// lists are mutated in place: a split replaces the original with its first
// half and appends the second half, so new pieces are still visited by the
// scan. Returns the nodes created purely by intersection.
//
// Intersections coinciding with an existing endpoint reuse that node rather
// than allocating a duplicate, preserving node identity. A point the two
// segments already share is a common corner and is skipped outright.
func (g *Graph) intersect() []int32 {
	var ovg []int32

	for i := 0; i < len(g.H); i++ {
		for j := 0; j < len(g.V); j++ {
			h := g.H[i]
			v := g.V[j]

			x, ok := geo.SegmentIntersection(g.At(h.A), g.At(h.B), g.At(v.A), g.At(v.B))
			if !ok {
				continue
			}

			onH := h.A
			if !x.Eq(g.At(h.A)) {
				if x.Eq(g.At(h.B)) {
					onH = h.B
				} else {
					onH = none
				}
			}
			onV := v.A
			if !x.Eq(g.At(v.A)) {
				if x.Eq(g.At(v.B)) {
					onV = v.B
				} else {
					onV = none
				}
			}

			switch {
			case onH != none && onV != none:
				// Shared corner, already connected.
				continue
			case onH != none:
				// Interior to the vertical segment only. A node that must
				// not grow vertical neighbours is bypassed with a fresh
				// node, so the corridor passes over it without touching it.
				if g.Nodes[onH].HorizontalOnly {
					n := g.add(x)
					g.spliceV(j, n)
					ovg = append(ovg, n)
				} else {
					g.spliceV(j, onH)
				}
			case onV != none:
				// Interior to the horizontal segment only; mirror case.
				if g.Nodes[onV].VerticalOnly {
					n := g.add(x)
					g.spliceH(i, n)
					ovg = append(ovg, n)
				} else {
					g.spliceH(i, onV)
				}
			default:
				n := g.add(x)
				g.spliceH(i, n)
				g.spliceV(j, n)
				ovg = append(ovg, n)
			}
		}
	}

	return ovg
}

// spliceH splits horizontal segment i at node n, which must lie strictly
// between its endpoints. The western half replaces g.H[i]; the eastern half
// is appended. Adjacency is rewired so n sits between the two endpoints.
// A segment whose endpoints are no longer direct neighbours is left alone:
// rewiring it would clobber links that now pass through other nodes.
func (g *Graph) spliceH(i int, n int32) {
	s := g.H[i]
	w, e := s.A, s.B
	if g.At(w).X > g.At(e).X {
		w, e = e, w
	}
	if g.Nodes[w].Neighbors[geo.East] != e || g.Nodes[e].Neighbors[geo.West] != w {
		return
	}

	g.Nodes[w].Neighbors[geo.East] = n
	g.Nodes[n].Neighbors[geo.West] = w
	g.Nodes[n].Neighbors[geo.East] = e
	g.Nodes[e].Neighbors[geo.West] = n

	g.H[i] = Segment{A: w, B: n}
	g.H = append(g.H, Segment{A: n, B: e})
}

// spliceV splits vertical segment j at node n, mirroring spliceH. The
// northern half replaces g.V[j]; the southern half is appended.
func (g *Graph) spliceV(j int, n int32) {
	s := g.V[j]
	t, b := s.A, s.B
	if g.At(t).Y > g.At(b).Y {
		t, b = b, t
	}
	if g.Nodes[t].Neighbors[geo.South] != b || g.Nodes[b].Neighbors[geo.North] != t {
		return
	}

	g.Nodes[t].Neighbors[geo.South] = n
	g.Nodes[n].Neighbors[geo.North] = t
	g.Nodes[n].Neighbors[geo.South] = b
	g.Nodes[b].Neighbors[geo.North] = n

	g.V[j] = Segment{A: t, B: n}
	g.V = append(g.V, Segment{A: n, B: b})
}
