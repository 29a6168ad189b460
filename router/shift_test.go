package router

import (
	"testing"

	"ortho/geo"
)

func TestShift(t *testing.T) {
	tests := []struct {
		name   string
		path   []geo.Point
		dx, dy float64
		want   []geo.Point
	}{
		{
			name: "too short to shift",
			path: []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
			dx:   5, dy: 5,
			want: []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		},
		{
			name: "endpoints pinned, interior fully shifted",
			path: []geo.Point{
				{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 30, Y: 20},
			},
			dx: 2, dy: 2,
			want: []geo.Point{
				{X: 0, Y: 0}, {X: 0, Y: 12}, {X: 22, Y: 12}, {X: 22, Y: 20}, {X: 30, Y: 20},
			},
		},
		{
			name: "second point sharing y shifts only in x",
			path: []geo.Point{
				{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20},
			},
			dx: 3, dy: 3,
			want: []geo.Point{
				{X: 0, Y: 0}, {X: 13, Y: 0}, {X: 13, Y: 13}, {X: 20, Y: 13}, {X: 20, Y: 20},
			},
		},
		{
			name: "single bend constrained on both sides",
			path: []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
			dx:   4, dy: 4,
			want: []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := make([]geo.Point, len(tt.path))
			copy(path, tt.path)
			Shift(path, tt.dx, tt.dy)
			for i := range tt.want {
				if !path[i].Eq(tt.want[i]) {
					t.Errorf("path[%d] = %v, want %v", i, path[i], tt.want[i])
				}
			}
		})
	}
}
