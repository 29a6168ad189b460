// Package router lays out orthogonal connectors between diagram entities.
// It builds an orthogonal visibility graph around rectangular obstacles and
// answers shortest-route queries over it, preferring routes with few turns.
//
// The caller supplies obstacle rectangles (already inflated by any desired
// margin) and connector anchor points, builds the graph once per layout,
// then requests one route per link against the shared graph.
package router

import (
	"errors"
	"fmt"
	"log/slog"

	"ortho/geo"
)

var (
	// ErrGraphNotBuilt is returned when a route is requested before
	// GenerateOrthogonalGraph has been called.
	ErrGraphNotBuilt = errors.New("router: orthogonal graph not built")

	// ErrUnknownConnector is returned when a route endpoint matches no
	// known connector point.
	ErrUnknownConnector = errors.New("router: no connector at point")

	// ErrNoRoute is returned when the search exhausts every reachable
	// node without finding the goal.
	ErrNoRoute = errors.New("router: no route found")
)

// Config carries the router's tuning knobs. The zero value is not useful;
// start from DefaultConfig.
type Config struct {
	// TurnPenalty is the fixed cost added whenever a route changes
	// direction, biasing the search toward straighter paths.
	TurnPenalty float64

	// ShiftStep is the per-link fan-out offset applied by RouteLinks so
	// links sharing a corridor separate visually.
	ShiftStep float64

	// Logger receives debug-level instrumentation. Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		TurnPenalty: 0.1,
		ShiftStep:   2,
	}
}

// Router owns the obstacle and connector state for one layout pass and the
// visibility graph derived from them. Changing obstacles or connectors
// invalidates the graph; it must be rebuilt before further routing.
//
// A Router is not safe for concurrent use. Routes against a shared graph
// must be serialized, or each goroutine must route over its own Router.
type Router struct {
	cfg        Config
	obstacles  []Obstacle
	connectors []Connector
	graph      *Graph
	routed     int // links routed since the last graph build, drives fan-out
}

// NewRouter creates a router with the given configuration.
func NewRouter(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// SetObstacles replaces the obstacle set and invalidates the graph.
func (r *Router) SetObstacles(obstacles []Obstacle) {
	r.obstacles = obstacles
	r.graph = nil
}

// SetConnectorPoints replaces the connector points and invalidates the graph.
func (r *Router) SetConnectorPoints(points []Connector) {
	r.connectors = points
	r.graph = nil
}

// Graph returns the current visibility graph, or nil before a build. The
// graph is shared state; callers must not mutate it.
func (r *Router) Graph() *Graph {
	return r.graph
}

// GenerateOrthogonalGraph builds the visibility graph for the current
// obstacles and connectors, with rays clipped to area. It must be called
// after the obstacle and connector sets are in place and before any route
// request, and rebuilt whenever either set changes.
func (r *Router) GenerateOrthogonalGraph(area geo.Rect) {
	g := buildGraph(r.connectors, r.obstacles, area)
	g.OVG = g.intersect()
	r.graph = g
	r.routed = 0

	if r.cfg.Logger != nil {
		r.cfg.Logger.Debug("orthogonal graph built",
			slog.Int("nodes", len(g.Nodes)),
			slog.Int("horizontal", len(g.H)),
			slog.Int("vertical", len(g.V)),
			slog.Int("poi", len(g.POI)),
			slog.Int("intersections", len(g.OVG)))
	}
}

// FindRoute searches the graph for an orthogonal route between two
// connector points, given by coordinates. It returns the ordered polyline
// from start to end inclusive. Failures are results, not panics:
// ErrGraphNotBuilt and ErrUnknownConnector report configuration errors,
// ErrNoRoute reports an unreachable goal.
func (r *Router) FindRoute(start, end geo.Point) ([]geo.Point, error) {
	if r.graph == nil {
		return nil, ErrGraphNotBuilt
	}

	from, err := r.connectorAt(start)
	if err != nil {
		return nil, err
	}
	to, err := r.connectorAt(end)
	if err != nil {
		return nil, err
	}

	path, err := r.graph.findRoute(from, to, r.cfg.TurnPenalty)
	if r.cfg.Logger != nil {
		r.cfg.Logger.Debug("route computed",
			slog.Any("start", start),
			slog.Any("end", end),
			slog.Int("points", len(path)),
			slog.Any("err", err))
	}
	return path, err
}

// connectorAt resolves a bare coordinate to the matching connector node.
func (r *Router) connectorAt(p geo.Point) (int32, error) {
	g := r.graph
	for _, i := range g.POI {
		if g.Nodes[i].Connector && g.At(i).Eq(p) {
			return i, nil
		}
	}
	return none, fmt.Errorf("%w: (%v, %v)", ErrUnknownConnector, p.X, p.Y)
}

// Link names one connector pair to route.
type Link struct {
	From, To geo.Point
}

// LinkRoute is the outcome of routing a single link. A failed link carries
// its error and leaves routing of the remaining links unaffected.
type LinkRoute struct {
	Points []geo.Point
	Err    error
}

// RouteLinks routes each link in caller order against the shared graph and
// fans out successive routes by ShiftStep so overlapping corridors separate.
// The fan-out offset accumulates in call order, so callers needing
// reproducible output must supply links in a stable order.
func (r *Router) RouteLinks(links []Link) []LinkRoute {
	routes := make([]LinkRoute, len(links))
	for i, l := range links {
		points, err := r.FindRoute(l.From, l.To)
		if err != nil {
			routes[i] = LinkRoute{Err: fmt.Errorf("link %d: %w", i, err)}
			continue
		}
		offset := float64(r.routed) * r.cfg.ShiftStep
		Shift(points, offset, offset)
		r.routed++
		routes[i] = LinkRoute{Points: points}
	}
	return routes
}
