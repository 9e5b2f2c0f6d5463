// package layout assigns coordinates to graph nodes over time. The force
// simulation here is deliberately behind a small interface so rendering and
// highlighting can be tested against a stub instead of physics numerics.
package layout

import (
	"math"

	"github.com/agentguard/agentgraph/viz"
)

// Position is one node's coordinates in a frame snapshot.
type Position struct {
	ID string
	X  float64
	Y  float64
}

// Simulator produces per-tick position updates for a graph. Implementations
// own the X/Y fields of the nodes they were started with; everything else
// reads positions through Positions snapshots.
type Simulator interface {
	// Start initializes the simulation for a dataset and surface size.
	// It may rewrite edge endpoints in place from id strings to resolved
	// *viz.GraphNode references; endpoints that don't resolve are left as
	// strings and exert no force.
	Start(data *viz.AgentGraphData, width, height float64)
	// Tick advances the simulation one step and reports whether it is
	// still running. After the cooldown elapses Tick returns false and
	// positions stop changing.
	Tick() bool
	// Positions returns an immutable snapshot of current coordinates.
	Positions() []Position
	// Resize recenters the simulation for a new surface size.
	Resize(width, height float64)
}

// Force-model constants, tuned against the usual d3 defaults (charge -400,
// link distance ~60, centering on the surface midpoint).
const (
	repulsionStrength = 400.0
	springStrength    = 0.05
	springLength      = 60.0
	centerStrength    = 0.03
	velocityDamping   = 0.6

	alphaInitial = 1.0
	alphaDecay   = 0.985
	alphaMin     = 0.005
	maxTicks     = 600
)

type forceNode struct {
	node   *viz.GraphNode
	vx, vy float64
}

type forceLink struct {
	source, target *forceNode
}

// ForceSim is the built-in force-directed Simulator.
type ForceSim struct {
	nodes  []*forceNode
	links  []forceLink
	width  float64
	height float64
	alpha  float64
	ticks  int
}

var _ Simulator = (*ForceSim)(nil)

func NewForceSim() *ForceSim {
	return &ForceSim{}
}

func (s *ForceSim) Start(data *viz.AgentGraphData, width, height float64) {
	s.width, s.height = width, height
	s.alpha = alphaInitial
	s.ticks = 0
	s.nodes = nil
	s.links = nil

	fnByID := make(map[string]*forceNode, len(data.Nodes))
	for i, n := range data.Nodes {
		fn := &forceNode{node: n}
		// Phyllotaxis seeding spreads nodes deterministically around the
		// center so the first frame is already untangled-ish.
		radius := 12 * math.Sqrt(float64(i)+0.5)
		angle := float64(i) * 2.3999632
		n.X = width/2 + radius*math.Cos(angle)
		n.Y = height/2 + radius*math.Sin(angle)
		s.nodes = append(s.nodes, fn)
		fnByID[n.ID] = fn
	}

	for _, e := range data.Edges {
		src, okS := fnByID[viz.EndpointID(e.Source)]
		tgt, okT := fnByID[viz.EndpointID(e.Target)]
		if !okS || !okT {
			continue
		}
		// Rewrite endpoints to resolved node references, as consumers of
		// the edge list are required to tolerate.
		e.Source = src.node
		e.Target = tgt.node
		s.links = append(s.links, forceLink{source: src, target: tgt})
	}
}

func (s *ForceSim) Tick() bool {
	if s.alpha < alphaMin || s.ticks >= maxTicks {
		return false
	}
	s.ticks++

	// Pairwise repulsion.
	for i, a := range s.nodes {
		for _, b := range s.nodes[i+1:] {
			dx := b.node.X - a.node.X
			dy := b.node.Y - a.node.Y
			d2 := dx*dx + dy*dy
			if d2 < 1 {
				d2 = 1
			}
			f := repulsionStrength * s.alpha / d2
			d := math.Sqrt(d2)
			fx, fy := f*dx/d, f*dy/d
			a.vx -= fx
			a.vy -= fy
			b.vx += fx
			b.vy += fy
		}
	}

	// Spring attraction along links.
	for _, l := range s.links {
		dx := l.target.node.X - l.source.node.X
		dy := l.target.node.Y - l.source.node.Y
		d := math.Hypot(dx, dy)
		if d < 1 {
			d = 1
		}
		f := springStrength * s.alpha * (d - springLength) / d
		fx, fy := f*dx, f*dy
		l.source.vx += fx
		l.source.vy += fy
		l.target.vx -= fx
		l.target.vy -= fy
	}

	// Centering and integration.
	cx, cy := s.width/2, s.height/2
	for _, fn := range s.nodes {
		fn.vx += (cx - fn.node.X) * centerStrength * s.alpha
		fn.vy += (cy - fn.node.Y) * centerStrength * s.alpha
		fn.vx *= velocityDamping
		fn.vy *= velocityDamping
		fn.node.X += fn.vx
		fn.node.Y += fn.vy
	}

	s.alpha *= alphaDecay
	return true
}

func (s *ForceSim) Positions() []Position {
	out := make([]Position, 0, len(s.nodes))
	for _, fn := range s.nodes {
		out = append(out, Position{ID: fn.node.ID, X: fn.node.X, Y: fn.node.Y})
	}
	return out
}

func (s *ForceSim) Resize(width, height float64) {
	dx := (width - s.width) / 2
	dy := (height - s.height) / 2
	s.width, s.height = width, height
	for _, fn := range s.nodes {
		fn.node.X += dx
		fn.node.Y += dy
	}
}

// Settle runs the simulation to completion. Useful for static exports where
// nobody is watching the animation.
func Settle(s Simulator) {
	for s.Tick() {
	}
}
