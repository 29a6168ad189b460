package router

import (
	"container/heap"

	"ortho/geo"
)

// searchNode holds the per-search scratch state for one graph node. Scratch
// lives in a table allocated per search rather than on the shared graph
// nodes, so nothing leaks between route requests and searches over copies
// of a graph are independent.
type searchNode struct {
	idx     int32
	gCost   float64
	hCost   float64
	fCost   float64
	parent  int32 // arena index of the predecessor, none at start
	index   int   // position in the heap, -1 when not queued
	visited bool
	closed  bool
}

// nodeQueue is a priority queue of open search nodes, lowest fCost first.
type nodeQueue []*searchNode

func (nq nodeQueue) Len() int { return len(nq) }

func (nq nodeQueue) Less(i, j int) bool {
	if nq[i].fCost != nq[j].fCost {
		return nq[i].fCost < nq[j].fCost
	}
	// Tie-break toward the goal, then on arena index for determinism.
	if nq[i].hCost != nq[j].hCost {
		return nq[i].hCost < nq[j].hCost
	}
	return nq[i].idx < nq[j].idx
}

func (nq nodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].index = i
	nq[j].index = j
}

func (nq *nodeQueue) Push(x interface{}) {
	n := x.(*searchNode)
	n.index = len(*nq)
	*nq = append(*nq, n)
}

func (nq *nodeQueue) Pop() interface{} {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // avoid memory leak
	node.index = -1
	*nq = old[0 : n-1]
	return node
}

// findRoute runs an A* search between two graph nodes and returns the
// ordered polyline from start to end. Edge weight is the squared Euclidean
// distance plus turnPenalty whenever the direction of travel changes
// relative to the chosen incoming edge; the heuristic is the Manhattan
// distance to the goal. Connector nodes other than the goal are never
// traversed. Exhausting the open set yields ErrNoRoute.
func (g *Graph) findRoute(start, end int32, turnPenalty float64) ([]geo.Point, error) {
	if start == end {
		return []geo.Point{g.At(start)}, nil
	}

	goal := g.At(end)
	state := make([]searchNode, len(g.Nodes))
	for i := range state {
		state[i].idx = int32(i)
		state[i].parent = none
		state[i].index = -1
	}

	open := &nodeQueue{}
	heap.Init(open)

	s := &state[start]
	s.hCost = geo.ManhattanDistance(g.At(start), goal)
	s.fCost = s.hCost
	s.visited = true
	heap.Push(open, s)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchNode)
		if cur.idx == end {
			return g.reconstruct(state, cur), nil
		}
		cur.closed = true

		curP := g.At(cur.idx)
		for _, nb := range g.Nodes[cur.idx].Neighbors {
			if nb == none {
				continue
			}
			ns := &state[nb]
			if ns.closed {
				continue
			}
			// A route may terminate at its own goal connector but never
			// pass through another link's anchor.
			if g.Nodes[nb].Connector && nb != end {
				continue
			}

			nbP := g.At(nb)
			weight := geo.SquaredDistance(curP, nbP)
			if cur.parent != none {
				incoming := geo.DirectionBetween(g.At(cur.parent), curP)
				if geo.DirectionBetween(curP, nbP) != incoming {
					weight += turnPenalty
				}
			}

			tentative := cur.gCost + weight
			if ns.visited && tentative >= ns.gCost {
				continue
			}

			ns.gCost = tentative
			ns.hCost = geo.ManhattanDistance(nbP, goal)
			ns.fCost = tentative + ns.hCost
			ns.parent = cur.idx
			if !ns.visited {
				ns.visited = true
				heap.Push(open, ns)
			} else {
				heap.Fix(open, ns.index)
			}
		}
	}

	return nil, ErrNoRoute
}

// reconstruct walks the parent links back from the goal and returns the
// path in start-to-end order.
func (g *Graph) reconstruct(state []searchNode, goal *searchNode) []geo.Point {
	var rev []geo.Point
	for i := goal.idx; i != none; i = state[i].parent {
		rev = append(rev, g.At(i))
	}
	points := make([]geo.Point, len(rev))
	for i, p := range rev {
		points[len(points)-1-i] = p
	}
	return points
}
