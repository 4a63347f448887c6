package physics

import (
	"math"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Drift applies a gentle simplex-noise wander to settled node positions so
// an idle diagram keeps a faint sense of motion. It is purely cosmetic and
// optional; positions stay inside the clamp bounds.
type Drift struct {
	noise     opensimplex.Noise
	amplitude float64
	scale     float64
	t         float64
}

// NewDrift creates a drift source with the given displacement amplitude in
// pixels per step.
func NewDrift(amplitude float64) *Drift {
	return &Drift{
		noise:     opensimplex.New(time.Now().UnixNano()),
		amplitude: amplitude,
		scale:     0.02,
	}
}

// Step nudges every node by a noise vector sampled at its position and the
// drift clock, then re-clamps to the canvas bounds.
func (d *Drift) Step(e *Engine) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.graph
	for _, n := range g.Nodes {
		dx := d.noise.Eval3(n.X*d.scale, n.Y*d.scale, d.t)
		dy := d.noise.Eval3(n.X*d.scale+100, n.Y*d.scale+100, d.t)
		n.X += dx * d.amplitude
		n.Y += dy * d.amplitude
		n.X = math.Max(EdgeMargin, math.Min(g.Width-EdgeMargin, n.X))
		n.Y = math.Max(EdgeMargin, math.Min(g.Height-EdgeMargin, n.Y))
	}
	d.t += 0.05
}
