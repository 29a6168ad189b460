package router

import (
	"errors"
	"testing"

	"ortho/geo"
)

func detourRouter() (*Router, geo.Point, geo.Point) {
	obstacles := []Obstacle{
		ObstacleFromRect(geo.Rect{X: 10, Y: 10, W: 20, H: 10}),
	}
	a := geo.Point{X: 5, Y: 15}
	b := geo.Point{X: 35, Y: 15}

	r := NewRouter(DefaultConfig())
	r.SetObstacles(obstacles)
	r.SetConnectorPoints([]Connector{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}})
	r.GenerateOrthogonalGraph(geo.Rect{X: 0, Y: 0, W: 50, H: 30})
	return r, a, b
}

func TestFindRouteBeforeBuild(t *testing.T) {
	r := NewRouter(DefaultConfig())
	r.SetConnectorPoints([]Connector{{X: 0, Y: 0}, {X: 10, Y: 0}})

	_, err := r.FindRoute(geo.Point{X: 0, Y: 0}, geo.Point{X: 10, Y: 0})
	if !errors.Is(err, ErrGraphNotBuilt) {
		t.Errorf("FindRoute error = %v, want ErrGraphNotBuilt", err)
	}
}

func TestSettersInvalidateGraph(t *testing.T) {
	r, a, b := detourRouter()
	if _, err := r.FindRoute(a, b); err != nil {
		t.Fatalf("FindRoute failed on fresh graph: %v", err)
	}
	if r.Graph() == nil {
		t.Fatal("Graph() = nil after build")
	}

	r.SetObstacles(nil)
	if _, err := r.FindRoute(a, b); !errors.Is(err, ErrGraphNotBuilt) {
		t.Errorf("FindRoute after SetObstacles = %v, want ErrGraphNotBuilt", err)
	}
	if r.Graph() != nil {
		t.Error("Graph() survived SetObstacles")
	}

	r.GenerateOrthogonalGraph(geo.Rect{X: 0, Y: 0, W: 50, H: 30})
	r.SetConnectorPoints(nil)
	if _, err := r.FindRoute(a, b); !errors.Is(err, ErrGraphNotBuilt) {
		t.Errorf("FindRoute after SetConnectorPoints = %v, want ErrGraphNotBuilt", err)
	}
}

func TestRouteLinksFansOut(t *testing.T) {
	r, a, b := detourRouter()

	routes := r.RouteLinks([]Link{
		{From: a, To: b},
		{From: a, To: b},
	})
	if routes[0].Err != nil || routes[1].Err != nil {
		t.Fatalf("routing failed: %v, %v", routes[0].Err, routes[1].Err)
	}

	first, second := routes[0].Points, routes[1].Points
	if !first[0].Eq(a) || !second[0].Eq(a) {
		t.Error("fan-out moved a start anchor")
	}
	if !first[len(first)-1].Eq(b) || !second[len(second)-1].Eq(b) {
		t.Error("fan-out moved an end anchor")
	}

	moved := false
	for i := 1; i < len(second)-1 && i < len(first)-1; i++ {
		if !first[i].Eq(second[i]) {
			moved = true
		}
	}
	if !moved {
		t.Errorf("second route not fanned out from the first:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestRouteLinksReportsPerLinkErrors(t *testing.T) {
	r, a, b := detourRouter()

	routes := r.RouteLinks([]Link{
		{From: a, To: b},
		{From: geo.Point{X: 99, Y: 99}, To: b},
		{From: b, To: a},
	})

	if routes[0].Err != nil {
		t.Errorf("link 0 failed: %v", routes[0].Err)
	}
	if !errors.Is(routes[1].Err, ErrUnknownConnector) {
		t.Errorf("link 1 error = %v, want ErrUnknownConnector", routes[1].Err)
	}
	if routes[2].Err != nil {
		t.Errorf("link 2 failed after a bad link: %v", routes[2].Err)
	}
	if len(routes[1].Points) != 0 {
		t.Errorf("failed link carries points: %v", routes[1].Points)
	}
}

func TestRebuildResetsFanOut(t *testing.T) {
	r, a, b := detourRouter()

	before := r.RouteLinks([]Link{{From: a, To: b}, {From: a, To: b}})

	r.GenerateOrthogonalGraph(geo.Rect{X: 0, Y: 0, W: 50, H: 30})
	after := r.RouteLinks([]Link{{From: a, To: b}})

	if before[0].Err != nil || after[0].Err != nil {
		t.Fatalf("routing failed: %v, %v", before[0].Err, after[0].Err)
	}
	if len(before[0].Points) != len(after[0].Points) {
		t.Fatalf("routes differ after rebuild: %v vs %v", before[0].Points, after[0].Points)
	}
	for i := range after[0].Points {
		if !before[0].Points[i].Eq(after[0].Points[i]) {
			t.Errorf("rebuild did not reset fan-out at %d: %v vs %v",
				i, before[0].Points[i], after[0].Points[i])
		}
	}
}

func benchScene() ([]Connector, []Obstacle, geo.Rect) {
	obstacles := []Obstacle{
		ObstacleFromRect(geo.Rect{X: 20, Y: 20, W: 40, H: 30}),
		ObstacleFromRect(geo.Rect{X: 80, Y: 10, W: 40, H: 30}),
		ObstacleFromRect(geo.Rect{X: 80, Y: 60, W: 40, H: 30}),
		ObstacleFromRect(geo.Rect{X: 140, Y: 30, W: 40, H: 40}),
	}
	connectors := []Connector{
		{X: 10, Y: 35, HorizontalOnly: true},
		{X: 190, Y: 50, HorizontalOnly: true},
		{X: 70, Y: 25},
		{X: 130, Y: 75},
	}
	return connectors, obstacles, geo.Rect{X: 0, Y: 0, W: 200, H: 100}
}

func BenchmarkGenerateOrthogonalGraph(b *testing.B) {
	connectors, obstacles, area := benchScene()
	r := NewRouter(DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.SetObstacles(obstacles)
		r.SetConnectorPoints(connectors)
		r.GenerateOrthogonalGraph(area)
	}
}

func BenchmarkFindRoute(b *testing.B) {
	connectors, obstacles, area := benchScene()
	r := NewRouter(DefaultConfig())
	r.SetObstacles(obstacles)
	r.SetConnectorPoints(connectors)
	r.GenerateOrthogonalGraph(area)

	from := geo.Point{X: 10, Y: 35}
	to := geo.Point{X: 190, Y: 50}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.FindRoute(from, to); err != nil {
			b.Fatal(err)
		}
	}
}
