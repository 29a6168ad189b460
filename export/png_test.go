package export

import (
	"os"
	"path/filepath"
	"testing"

	"ortho/geo"
	"ortho/layout"
	"ortho/router"
)

func TestWritePNG(t *testing.T) {
	tables := []layout.Table{
		{ID: "users", X: 20, Y: 20, W: 80, H: 40, Nodes: []layout.TableNode{
			{ID: "id", X: 20, Y: 38, W: 80, H: 18},
		}},
		{ID: "teams", X: 180, Y: 20, W: 80, H: 40},
	}
	area := layout.WorkingArea(tables, 20)

	r := router.NewRouter(router.DefaultConfig())
	r.SetObstacles(layout.Obstacles(tables, 5))
	r.SetConnectorPoints([]router.Connector{
		{X: 105, Y: 47, HorizontalOnly: true},
		{X: 175, Y: 40, HorizontalOnly: true},
	})
	r.GenerateOrthogonalGraph(area)

	path, err := r.FindRoute(geo.Point{X: 105, Y: 47}, geo.Point{X: 175, Y: 40})
	if err != nil {
		t.Fatalf("FindRoute failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "scene.png")
	scene := Scene{
		Area:   area,
		Tables: tables,
		Routes: [][]geo.Point{path},
		Graph:  r.Graph(),
	}
	if err := WritePNG(out, scene, 2); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestWritePNGRejectsBadInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scene.png")

	if err := WritePNG(out, Scene{Area: geo.Rect{W: 10, H: 10}}, 0); err == nil {
		t.Error("WritePNG accepted zero scale")
	}
	if err := WritePNG(out, Scene{}, 1); err == nil {
		t.Error("WritePNG accepted an empty area")
	}
}
