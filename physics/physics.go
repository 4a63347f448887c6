// Package physics owns the simulation state of the trustgraph widget: node
// positions and velocities, the three force contributions, the integration
// step, and the paced simulation driver.
package physics

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/TFMV/trustgraph/models"
)

// Force and integration constants. These are the tuned values for small
// interactive diagrams; the engine is not a general physics model.
const (
	// CenterPull accelerates each node toward the canvas center in
	// proportion to its displacement.
	CenterPull = 0.01

	// RepulsionRadius is the pairwise distance below which nodes push each
	// other apart. Pairs at or beyond it exert no repulsion.
	RepulsionRadius = 100.0

	// RepulsionStrength scales the remaining slack (RepulsionRadius - d).
	RepulsionStrength = 0.5

	// SpringLength is the natural rest length of a link spring.
	SpringLength = 100.0

	// SpringStiffness scales the spring displacement (d - SpringLength).
	SpringStiffness = 0.1

	// Damping multiplies velocity after each integration step.
	Damping = 0.8

	// EdgeMargin keeps nodes off the canvas edge when clamping.
	EdgeMargin = 30.0
)

// Engine owns node position and velocity state. The renderer only reads this
// state; the interaction controller is the only other writer, through the
// node's explicit position setter.
type Engine struct {
	mu    sync.Mutex
	graph *models.Graph
	rng   *rand.Rand
}

// NewEngine creates an engine with an empty graph of the given bounds.
func NewEngine(width, height float64) *Engine {
	return &Engine{
		graph: models.NewGraph(width, height),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Graph returns the engine's current graph for single-goroutine use, e.g.
// tests and one-shot rendering. Anything that may overlap a running
// simulation reads through WithGraph instead.
func (e *Engine) Graph() *models.Graph {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph
}

// WithGraph runs fn while holding the engine lock, so the caller sees a
// consistent position snapshot even mid-simulation. fn must not call back
// into the engine.
func (e *Engine) WithGraph(fn func(*models.Graph)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.graph)
}

// SetData fully replaces the simulation state with normalized entities built
// from the raw records. Each node gets a uniformly random position within
// [0,width) x [0,height) and zero velocity. Prior state, including manual
// drag adjustments, is discarded.
func (e *Engine) SetData(nodes []models.NodeRecord, links []models.LinkRecord) *models.Graph {
	e.mu.Lock()
	defer e.mu.Unlock()

	width, height := e.graph.Width, e.graph.Height
	g := models.BuildGraph(width, height, nodes, links)
	for _, n := range g.Nodes {
		n.X = e.rng.Float64() * width
		n.Y = e.rng.Float64() * height
	}
	e.graph = g
	return g
}

// SetGraph installs a prebuilt graph, seeding any node still at the origin.
// Used by callers that construct entities directly, e.g. tests and the
// one-shot renderer.
func (e *Engine) SetGraph(g *models.Graph) {
	e.mu.Lock()
	defer e.mu.Unlock()
	g.Width, g.Height = e.graph.Width, e.graph.Height
	for _, n := range g.Nodes {
		if n.X == 0 && n.Y == 0 {
			n.X = e.rng.Float64() * g.Width
			n.Y = e.rng.Float64() * g.Height
		}
	}
	e.graph = g
}

// ApplyForces computes one step's velocity deltas from the three force
// contributions: center pull, pairwise repulsion, and link springs.
func (e *Engine) ApplyForces() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyForcesLocked()
}

func (e *Engine) applyForcesLocked() {
	g := e.graph
	center := r2.Vec{X: g.Width / 2, Y: g.Height / 2}

	for _, n := range g.Nodes {
		pull := r2.Scale(CenterPull, r2.Sub(center, r2.Vec{X: n.X, Y: n.Y}))
		n.VX += pull.X
		n.VY += pull.Y
	}

	// O(n^2) pass over unordered pairs; acceptable for tens of nodes.
	for i := 0; i < len(g.Nodes); i++ {
		for j := i + 1; j < len(g.Nodes); j++ {
			a, b := g.Nodes[i], g.Nodes[j]
			delta := r2.Vec{X: b.X - a.X, Y: b.Y - a.Y}
			dist := r2.Norm(delta)
			if dist == 0 {
				dist = 1 // coincident points, avoid division by zero
			}
			if dist >= RepulsionRadius {
				continue
			}
			f := r2.Scale((RepulsionRadius-dist)*RepulsionStrength/dist, delta)
			a.VX -= f.X
			a.VY -= f.Y
			b.VX += f.X
			b.VY += f.Y
		}
	}

	for _, l := range g.Links {
		if !l.Resolved() {
			continue
		}
		delta := r2.Vec{X: l.Target.X - l.Source.X, Y: l.Target.Y - l.Source.Y}
		dist := r2.Norm(delta)
		if dist == 0 {
			dist = 1
		}
		f := r2.Scale((dist-SpringLength)*SpringStiffness/dist, delta)
		l.Source.VX += f.X
		l.Source.VY += f.Y
		l.Target.VX -= f.X
		l.Target.VY -= f.Y
	}
}

// Integrate adds velocity to position, damps velocity, and clamps positions
// into [EdgeMargin, width-EdgeMargin] x [EdgeMargin, height-EdgeMargin].
func (e *Engine) Integrate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.integrateLocked()
}

func (e *Engine) integrateLocked() {
	g := e.graph
	for _, n := range g.Nodes {
		n.X += n.VX
		n.Y += n.VY
		n.VX *= Damping
		n.VY *= Damping
		n.X = math.Max(EdgeMargin, math.Min(g.Width-EdgeMargin, n.X))
		n.Y = math.Max(EdgeMargin, math.Min(g.Height-EdgeMargin, n.Y))
	}
}

// Step performs one full simulation tick: force computation followed by
// integration.
func (e *Engine) Step() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyForcesLocked()
	e.integrateLocked()
}

// MoveNode overwrites a node's position directly, bypassing forces. This is
// the drag-commit path; no clamping is applied, so a dragged node may sit
// outside the canvas until the next integration step pulls it back.
func (e *Engine) MoveNode(id string, x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n := e.graph.FindNode(id); n != nil {
		n.SetPosition(x, y)
	}
}

// KineticEnergy returns the sum of squared node speeds. Used by the opt-in
// early-settle check in the simulation driver.
func (e *Engine) KineticEnergy() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0.0
	for _, n := range e.graph.Nodes {
		total += n.VX*n.VX + n.VY*n.VY
	}
	return total
}
