// Command orthoview routes the connectors of a small demo table diagram and
// shows the result, either interactively in the terminal or as a PNG file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"ortho/export"
	"ortho/geo"
	"ortho/layout"
	"ortho/router"
)

// routeMargin is the clearance kept between routes and table bodies.
const routeMargin = 6

func main() {
	var (
		output  = flag.String("o", "", "Write the routed scene to a PNG file instead of the terminal")
		grid    = flag.Bool("g", false, "Draw the visibility graph behind the routes (PNG only)")
		scale   = flag.Float64("s", 3, "Pixels per scene unit for PNG output")
		verbose = flag.Bool("v", false, "Log routing internals to stderr")
	)
	flag.Parse()

	cfg := router.DefaultConfig()
	if *verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	tables, specs := demoScene()
	connectors, links := anchorLinks(tables, specs)
	area := layout.WorkingArea(tables, 4*routeMargin)

	r := router.NewRouter(cfg)
	r.SetObstacles(layout.Obstacles(tables, routeMargin))
	r.SetConnectorPoints(connectors)
	r.GenerateOrthogonalGraph(area)

	routes := r.RouteLinks(links)
	var polylines [][]geo.Point
	for i, route := range routes {
		if route.Err != nil {
			fmt.Fprintf(os.Stderr, "Error routing link %d: %v\n", i, route.Err)
			continue
		}
		polylines = append(polylines, route.Points)
	}

	if *output != "" {
		scene := export.Scene{
			Area:   area,
			Tables: tables,
			Routes: polylines,
		}
		if *grid {
			scene.Graph = r.Graph()
		}
		if err := export.WritePNG(*output, scene, *scale); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing PNG: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := showTerminal(tables, area, polylines); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// linkSpec names a routed relationship by table and node index.
type linkSpec struct {
	fromTable, fromNode int
	toTable, toNode     int
}

// demoScene builds a small pre-placed diagram, standing in for the output
// of the external placement engine.
func demoScene() ([]layout.Table, []linkSpec) {
	tables := []layout.Table{
		{ID: "users", X: 30, Y: 40, W: 120, H: 76, Nodes: []layout.TableNode{
			{ID: "id", X: 30, Y: 58, W: 120, H: 18},
			{ID: "team_id", X: 30, Y: 76, W: 120, H: 18},
			{ID: "email", X: 30, Y: 94, W: 120, H: 18},
		}},
		{ID: "teams", X: 270, Y: 30, W: 120, H: 58, Nodes: []layout.TableNode{
			{ID: "id", X: 270, Y: 48, W: 120, H: 18},
			{ID: "name", X: 270, Y: 66, W: 120, H: 18},
		}},
		{ID: "posts", X: 270, Y: 160, W: 120, H: 76, Nodes: []layout.TableNode{
			{ID: "id", X: 270, Y: 178, W: 120, H: 18},
			{ID: "author_id", X: 270, Y: 196, W: 120, H: 18},
			{ID: "title", X: 270, Y: 214, W: 120, H: 18},
		}},
	}

	specs := []linkSpec{
		{fromTable: 0, fromNode: 1, toTable: 1, toNode: 0}, // users.team_id -> teams.id
		{fromTable: 2, fromNode: 1, toTable: 0, toNode: 0}, // posts.author_id -> users.id
	}
	return tables, specs
}

// anchorLinks derives the connector set and the link endpoints from the
// specs, deduplicating anchors shared by several links.
func anchorLinks(tables []layout.Table, specs []linkSpec) ([]router.Connector, []router.Link) {
	var connectors []router.Connector
	addAnchor := func(c router.Connector) geo.Point {
		p := geo.Point{X: c.X, Y: c.Y}
		for _, existing := range connectors {
			if (geo.Point{X: existing.X, Y: existing.Y}).Eq(p) {
				return p
			}
		}
		connectors = append(connectors, c)
		return p
	}

	links := make([]router.Link, len(specs))
	for i, s := range specs {
		from, to := tables[s.fromTable], tables[s.toTable]
		fromAnchor := layout.Anchor(from, from.Nodes[s.fromNode], layout.FacingSide(from, to), routeMargin)
		toAnchor := layout.Anchor(to, to.Nodes[s.toNode], layout.FacingSide(to, from), routeMargin)
		links[i] = router.Link{
			From: addAnchor(fromAnchor),
			To:   addAnchor(toAnchor),
		}
	}
	return connectors, links
}

// showTerminal renders the scene with tcell until q, Escape or Ctrl-C.
func showTerminal(tables []layout.Table, area geo.Rect, routes [][]geo.Point) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	for {
		screen.Clear()
		drawScene(screen, tables, area, routes)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return nil
			}
		}
	}
}

func drawScene(screen tcell.Screen, tables []layout.Table, area geo.Rect, routes [][]geo.Point) {
	w, h := screen.Size()
	if w < 2 || h < 2 {
		return
	}
	cellX := func(x float64) int { return int((x - area.X) / area.W * float64(w-1)) }
	cellY := func(y float64) int { return int((y - area.Y) / area.H * float64(h-1)) }
	style := tcell.StyleDefault

	for _, route := range routes {
		for i := 0; i < len(route)-1; i++ {
			x1, y1 := cellX(route[i].X), cellY(route[i].Y)
			x2, y2 := cellX(route[i+1].X), cellY(route[i+1].Y)
			if y1 == y2 {
				for x := min(x1, x2); x <= max(x1, x2); x++ {
					screen.SetContent(x, y1, '─', nil, style)
				}
			} else {
				for y := min(y1, y2); y <= max(y1, y2); y++ {
					screen.SetContent(x1, y, '│', nil, style)
				}
			}
			if i > 0 {
				screen.SetContent(x1, y1, '•', nil, style)
			}
		}
	}

	for _, t := range tables {
		r := t.Rect()
		x1, y1 := cellX(r.Left()), cellY(r.Top())
		x2, y2 := cellX(r.Right()), cellY(r.Bottom())
		drawBox(screen, x1, y1, x2, y2, style)
		for i, c := range t.ID {
			screen.SetContent(x1+1+i, y1, c, nil, style)
		}
		for _, n := range t.Nodes {
			y := cellY(n.Y + n.H/2)
			for i, c := range n.ID {
				if x1+2+i < x2 {
					screen.SetContent(x1+2+i, y, c, nil, style)
				}
			}
		}
	}
}

func drawBox(screen tcell.Screen, x1, y1, x2, y2 int, style tcell.Style) {
	for x := x1 + 1; x < x2; x++ {
		screen.SetContent(x, y1, '─', nil, style)
		screen.SetContent(x, y2, '─', nil, style)
	}
	for y := y1 + 1; y < y2; y++ {
		screen.SetContent(x1, y, '│', nil, style)
		screen.SetContent(x2, y, '│', nil, style)
	}
	screen.SetContent(x1, y1, '┌', nil, style)
	screen.SetContent(x2, y1, '┐', nil, style)
	screen.SetContent(x1, y2, '└', nil, style)
	screen.SetContent(x2, y2, '┘', nil, style)
}
