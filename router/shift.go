package router

import "ortho/geo"

// Shift translates a routed polyline in place so that links sharing a
// corridor fan out instead of overlaying exactly. The first and last points
// are anchors and never move. The second and second-to-last points move
// only along the axis that keeps their segment to the fixed neighbour
// orthogonal: a pair sharing an x shifts in y, a pair sharing a y shifts in
// x. All interior points shift by the full translation.
func Shift(path []geo.Point, dx, dy float64) {
	if len(path) < 3 {
		return
	}

	last := len(path) - 1
	for i := 1; i < last; i++ {
		sx, sy := dx, dy
		if i == 1 {
			if approxEq(path[0].X, path[i].X) {
				sx = 0
			} else if approxEq(path[0].Y, path[i].Y) {
				sy = 0
			}
		}
		if i == last-1 {
			if approxEq(path[last].X, path[i].X) {
				sx = 0
			} else if approxEq(path[last].Y, path[i].Y) {
				sy = 0
			}
		}
		path[i].X += sx
		path[i].Y += sy
	}
}
